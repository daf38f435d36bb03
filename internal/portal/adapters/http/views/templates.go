package views

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | Campus Portal</title>
</head>
<body>
<nav>
<a href="/">Home</a>
<a href="/register/list">Registered Users</a>
{{if .Identity}}<a href="/dashboard">Dashboard</a>
<form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>
{{else}}<a href="/login">Log in</a> <a href="/register">Register</a>{{end}}
</nav>
{{range .Feedback}}<div class="flash flash-{{.Category}}">{{.Text}}</div>
{{end}}<main>
<h1>{{.Title}}</h1>
{{template "content" .}}
</main>
</body>
</html>`

var pageTemplates = map[string]string{
	PageHome: `{{define "content"}}<p>Welcome to the course catalog and faculty directory.</p>{{end}}`,

	PageLogin: `{{define "content"}}<form method="post" action="/login">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Log in</button>
</form>{{end}}`,

	PageRegister: `{{define "content"}}<form method="post" action="/register">
<label>Name <input type="text" name="name" required></label>
<label>Email <input type="email" name="email" required></label>
<label>Confirm email <input type="email" name="emailConfirm" required></label>
<label>Password <input type="password" name="password" required></label>
<label>Confirm password <input type="password" name="passwordConfirm" required></label>
<button type="submit">Register</button>
</form>{{end}}`,

	PageUsers: `{{define "content"}}{{if .Users}}<table>
<tr><th>Name</th><th>Email</th><th>Role</th><th>Joined</th><th></th></tr>
{{range .Users}}<tr>
<td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Role}}</td><td>{{.CreatedAt}}</td>
<td>{{if .CanEdit}}<a href="/users/{{.ID}}/edit">Edit</a>{{end}}
{{if .CanDelete}}<form method="post" action="/users/{{.ID}}/delete" class="inline"><button type="submit">Delete</button></form>{{end}}</td>
</tr>
{{end}}</table>{{else}}<p>No users registered yet.</p>{{end}}{{end}}`,

	PageDashboard: `{{define "content"}}{{with .Identity}}<dl>
<dt>Name</dt><dd>{{.Name}}</dd>
<dt>Email</dt><dd>{{.Email}}</dd>
<dt>Role</dt><dd>{{.Role}}</dd>
</dl>
<a href="/users/{{.ID}}/edit">Edit account</a>{{end}}{{end}}`,

	PageEdit: `{{define "content"}}{{with .User}}<form method="post" action="/users/{{.ID}}/edit">
<label>Name <input type="text" name="name" value="{{.Name}}" required></label>
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<button type="submit">Save</button>
</form>{{end}}{{end}}`,

	PageError: `{{define "content"}}<p>{{.Message}}</p>{{end}}`,
}
