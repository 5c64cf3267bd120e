package main

import (
	"log"
	"net/http"
	"os"

	"github.com/aveline-studio/go-storefront/app/cmd"
	"github.com/aveline-studio/go-storefront/app/configs"
	"github.com/aveline-studio/go-storefront/app/models/migrations"
	"github.com/aveline-studio/go-storefront/app/routes"
	"github.com/aveline-studio/go-storefront/app/utils/sessions"
)

func main() {
	env := configs.LoadENV
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	if env.DBAutoMigrate {
		if err := migrations.AutoMigrate(db); err != nil {
			log.Fatal("Migration failed:", err)
		}
		log.Println("✅ Migration complete.")
	}

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys missing: %v. Run `go run . generate-keys` first.", err)
	}
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(db, sessionStore)

	addr := env.Port
	if addr == "" {
		addr = ":8080"
	}

	server := http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
