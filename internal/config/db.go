package config

// DB holds the database configuration settings.
type DB struct {
	// Engine selects the gorm driver: sqlite, mysql or postgres.
	Engine   string `mapstructure:"engine" validate:"oneof=sqlite mysql postgres"`
	Extras   string `mapstructure:"extras"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name"`
}
