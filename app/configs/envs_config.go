package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBAutoMigrate bool

	Port    string
	APP_URL string
	APP_ENV string

	AppAuthKey string
	AppEncKey  string

	AdminEmail    string
	AdminPassword string

	CurrencySymbol string

	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string

	MIDTRANS_CLIENT_KEY string
	MIDTRANS_SERVER_KEY string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		DBAutoMigrate: os.Getenv("DB_AUTO_MIGRATE") == "true",

		Port:    os.Getenv("APP_PORT"),
		APP_URL: os.Getenv("APP_URL"),
		APP_ENV: os.Getenv("APP_ENV"),

		AppAuthKey: os.Getenv("APP_AUTH_KEY"),
		AppEncKey:  os.Getenv("APP_ENC_KEY"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CurrencySymbol: os.Getenv("CURRENCY_SYMBOL"),

		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     os.Getenv("EMAIL_PORT"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     os.Getenv("EMAIL_USERNAME"),

		MIDTRANS_CLIENT_KEY: os.Getenv("MIDTRANS_CLIENT_KEY"),
		MIDTRANS_SERVER_KEY: os.Getenv("MIDTRANS_SERVER_KEY"),
	}

}

var LoadENV = LoadEnv()
