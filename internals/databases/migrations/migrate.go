package migrations

import (
	"log"

	"gorm.io/gorm"

	paymentModel "university_backend/internals/features/finance/payments/model"
	contentBlockModel "university_backend/internals/features/home/content_blocks/model"
	notificationModel "university_backend/internals/features/home/notifications/model"
	quickServiceModel "university_backend/internals/features/home/quick_services/model"
)

// Models: urutan migrasi.
func Models() []any {
	return []any{
		&quickServiceModel.QuickServiceModel{},
		&contentBlockModel.ContentBlockModel{},
		&notificationModel.NotificationModel{},
		&notificationModel.NotificationReadModel{},
		&paymentModel.Payment{},
		&paymentModel.PaymentGatewayEventModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("[INFO] AutoMigrate...")
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("[ERROR] AutoMigrate %T: %v", m, err)
			return err
		}
	}
	log.Println("[INFO] AutoMigrate selesai")
	return nil
}
