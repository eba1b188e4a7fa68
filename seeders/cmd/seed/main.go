package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"school-crm/pkg/config"
	"school-crm/pkg/database/postgresql"
	"school-crm/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 МИГРАЦИИ И СИДЕРЫ (Наполнение БД)           ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "Прогнать goose-миграции из ./migrations")
	runAdmin := flag.Bool("admin", false, "Создать администратора из конфига")
	runDemo := flag.Bool("demo", false, "Наполнить базу демо-данными")
	runAll := flag.Bool("all", false, "Всё сразу (эквивалентно -migrate -admin -demo)")

	flag.Parse()

	if !*runMigrate && !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбрана ни одна операция.")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры:")
		log.Println("  go run ./seeders/cmd/seed -migrate")
		log.Println("  go run ./seeders/cmd/seed -migrate -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if *runAll || *runMigrate {
		db, err := sql.Open("pgx", cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("❌ Ошибка подключения для миграций: %v", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("❌ Ошибка выбора диалекта goose: %v", err)
		}
		if err := goose.Up(db, "migrations"); err != nil {
			log.Fatalf("❌ Ошибка применения миграций: %v", err)
		}
		db.Close()
		log.Println("✅ Миграции применены.")
		log.Println("======================================================")
	}

	if *runAll || *runAdmin || *runDemo {
		dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
		defer dbPool.Close()

		if *runAll || *runAdmin {
			if err := seeders.SeedAdmin(dbPool, cfg); err != nil {
				log.Fatalf("❌ Ошибка создания администратора: %v", err)
			}
		}
		if *runAll || *runDemo {
			if err := seeders.SeedDemoData(dbPool); err != nil {
				log.Fatalf("❌ Ошибка наполнения демо-данными: %v", err)
			}
		}
	}

	log.Println("✅ Все указанные операции успешно завершены.")
	log.Println("======================================================")
}
