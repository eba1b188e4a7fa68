// Файл: seeders/admin_seeder.go
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-crm/pkg/config"
	"school-crm/pkg/constants"
	"school-crm/pkg/service"
)

// SeedAdmin создаёт дефолтного администратора из конфига, если его ещё нет.
// Запуск идемпотентен: существующий админ не трогается.
func SeedAdmin(db *pgxpool.Pool, cfg *config.Config) error {
	ctx := context.Background()
	log.Println("  - Создание администратора...")

	var existingID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", cfg.Admin.Email).Scan(&existingID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка проверки существования администратора: %w", err)
	}

	passwordSvc := service.NewPasswordService()
	hash, err := passwordSvc.Hash(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля администратора: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (email, first_name, last_name, password, role, is_active)
		 VALUES ($1, 'Admin', 'Admin', $2, $3, TRUE)`,
		cfg.Admin.Email, hash, constants.RoleAdmin)
	if err != nil {
		return fmt.Errorf("ошибка создания администратора: %w", err)
	}

	log.Println("    - Администратор создан:", cfg.Admin.Email)
	return nil
}
