// Command migrate-aliases seeds the law_aliases table with the canonical
// alias → law-code rows. Run it once against a fresh store, or again after
// adding rows to seedAliases; the upsert keeps it idempotent.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/reblaw/go-law-proxy/internal/repo"
	"github.com/reblaw/go-law-proxy/internal/sysutil"
)

// seedAliases maps human-entered law names to store codes. The store uses
// subject-area codes, so Persian short forms and the English names of the
// penal code all land on the same code.
var seedAliases = map[string]string{
	"قانون مجازات اسلامی": "حقوق_جزا",
	"ق.م.ا":               "حقوق_جزا",
	"مجازات اسلامی":       "حقوق_جزا",
	"Islamic Penal Code":  "حقوق_جزا",
	"Iran Penal Code":     "حقوق_جزا",
}

func main() {
	_ = godotenv.Load()
	sysutil.InitLogging("info", true)

	dbPath := sysutil.FirstNonEmpty(os.Getenv("DB_PATH"), "iran_laws.db")

	db, err := repo.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("open law db")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate law db")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.SeedAliases(ctx, db, seedAliases); err != nil {
		log.Fatal().Err(err).Msg("seed aliases")
	}
	log.Info().Int("aliases", len(seedAliases)).Str("path", dbPath).Msg("aliases seeded")
}
