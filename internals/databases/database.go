package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostelku_backend/internals/configs"
	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	attendanceModel "hostelku_backend/internals/features/hostel/attendance/model"
	authModel "hostelku_backend/internals/features/hostel/auth/model"
	dashboardModel "hostelku_backend/internals/features/hostel/dashboard/model"
	occupancyModel "hostelku_backend/internals/features/hostel/occupancy/model"
	penaltyModel "hostelku_backend/internals/features/hostel/penalties/model"
	supportModel "hostelku_backend/internals/features/hostel/support/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=hostelku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // needed for PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db
	log.Println("DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Migrate() {
	if err := DB.AutoMigrate(
		&admissionModel.Student{},
		&admissionModel.ActiveCandidate{},
		&occupancyModel.RoomCounter{},
		&occupancyModel.RoomConfiguration{},
		&dashboardModel.DashboardCounter{},
		&penaltyModel.PenaltyRecord{},
		&attendanceModel.Attendance{},
		&supportModel.SupportQuery{},
		&authModel.AccessPassword{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}
}
