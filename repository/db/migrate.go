package db

import (
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"todoapp/internal/domain/errors"
)

func Migration(dbStr, migratePath string) error {
	if dbStr == "" || migratePath == "" {
		return errors.ErrBadRequest
	}

	m, err := migrate.New("file://"+migratePath, dbStr)
	if err != nil {
		log.Println("[ERROR] Не удалось инициализировать миграции:", err)
		return err
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Println("[WARN] Ошибка при закрытии мигратора:", sourceErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Println("[ERROR] Не удалось применить миграции:", err)
		return err
	}

	return nil
}
