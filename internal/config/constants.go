package config

// DefaultDatabasePath is the default path for the application database
const DefaultDatabasePath = "./pfennig.db"
