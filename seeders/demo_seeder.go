// Файл: seeders/demo_seeder.go
package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type demoOrder struct {
	Name, Surname, Email, Phone      string
	Age, Sum, AlreadyPaid            int
	Course, CourseFormat, CourseType string
}

var demoGroups = []string{"sep-2026-1", "sep-2026-2", "nov-2026-1"}

var demoOrders = []demoOrder{
	{"Taras", "Shevchenko", "taras@example.com", "+380501112233", 22, 12000, 3000, "FS", "static", "pro"},
	{"Lesya", "Ukrainka", "lesya@example.com", "+380502223344", 25, 9000, 0, "QACX", "online", "minimal"},
	{"Ivan", "Franko", "ivan@example.com", "+380503334455", 30, 15000, 15000, "JSCX", "online", "premium"},
	{"Olha", "Kobylianska", "olha@example.com", "+380504445566", 27, 11000, 2000, "FE", "static", "vip"},
	{"Hryhorii", "Skovoroda", "hryhorii@example.com", "+380505556677", 35, 8000, 0, "PCX", "online", "incubator"},
}

// SeedDemoData наполняет базу тестовыми группами и заявками. Заявки
// заводятся без статуса и менеджера, как их оставляет внешняя форма.
func SeedDemoData(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - Наполнение демо-данными...")

	for _, name := range demoGroups {
		if _, err := db.Exec(ctx,
			`INSERT INTO groups (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("ошибка создания группы %q: %w", name, err)
		}
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return fmt.Errorf("ошибка подсчёта заявок: %w", err)
	}
	if count > 0 {
		log.Println("    - Заявки уже есть. Пропускаем.")
		return nil
	}

	for _, o := range demoOrders {
		if _, err := db.Exec(ctx,
			`INSERT INTO orders (name, surname, email, phone, age, course, course_format, course_type, sum, already_paid)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			o.Name, o.Surname, o.Email, o.Phone, o.Age, o.Course, o.CourseFormat, o.CourseType, o.Sum, o.AlreadyPaid); err != nil {
			return fmt.Errorf("ошибка создания заявки для %s: %w", o.Email, err)
		}
	}

	log.Println("    - Демо-данные созданы.")
	return nil
}
