package config

// SecurityConfig содержит параметры хэширования паролей.
type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"PORTAL_SECURITY_BCRYPT_COST" env-default:"10"`
}
