package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"armentum/internal/auth"
	"armentum/internal/config"
	"armentum/internal/db"
	"armentum/internal/model"
	"armentum/internal/repository"
)

type seedMember struct {
	email    string
	nombre   string
	voz      string
	telefono string
}

var seedMembers = []seedMember{
	{"soprano1@armentum.org", "Lucía Fernández", model.VoiceSoprano, "+34600111222"},
	{"contralto1@armentum.org", "Marta Gómez", model.VoiceContralto, "+34600333444"},
	{"tenor1@armentum.org", "Andrés Molina", model.VoiceTenor, "+34600555666"},
	{"bajo1@armentum.org", "Jorge Castillo", model.VoiceBajo, "+34600777888"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Member{},
		&model.Rehearsal{},
		&model.Due{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	roles := repository.NewRoleRepository(gormDB)
	members := repository.NewMemberRepository(gormDB)
	rehearsals := repository.NewRehearsalRepository(gormDB)
	dues := repository.NewDueRepository(gormDB)

	adminRole, err := roles.FindOrCreateByName(ctx, model.RoleAdmin, "Administrador del coro")
	if err != nil {
		log.Fatalf("Failed to create admin role: %v", err)
	}
	coristaRole, err := roles.FindOrCreateByName(ctx, model.RoleCorista, "Rol corista")
	if err != nil {
		log.Fatalf("Failed to create corista role: %v", err)
	}

	admin, err := seedUser(ctx, users, "admin@armentum.org", "Dirección Armentum", "admin123!")
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := assignRole(ctx, roles, admin, adminRole); err != nil {
		log.Fatalf("Failed to assign admin role: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, sm := range seedMembers {
		user, err := seedUser(ctx, users, sm.email, sm.nombre, "corista123!")
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", sm.email, err)
		}
		if err := assignRole(ctx, roles, user, coristaRole); err != nil {
			log.Fatalf("Failed to assign corista role: %v", err)
		}

		member, err := members.FindByUserID(ctx, user.ID)
		if err == gorm.ErrRecordNotFound {
			member = &model.Member{
				UserID:       user.ID,
				Voz:          sm.voz,
				FechaIngreso: today.AddDate(-1, 0, 0),
				Estado:       model.MemberStatusActive,
				Telefono:     sm.telefono,
				SaldoActual:  decimal.Zero,
			}
			if err := members.Create(ctx, member); err != nil {
				log.Fatalf("Failed to create member %s: %v", sm.email, err)
			}
		} else if err != nil {
			log.Fatalf("Failed to look up member %s: %v", sm.email, err)
		}

		// one pending due per member for the end of the month
		endOfMonth := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		if err := dues.Create(ctx, &model.Due{
			MiembroID:        member.ID,
			Monto:            decimal.NewFromInt(20),
			Descripcion:      "Cuota mensual",
			Tipo:             model.DueTypeRegular,
			FechaVencimiento: endOfMonth,
			Estado:           model.DueStatusPending,
			CreatedBy:        admin.ID,
		}); err != nil {
			log.Fatalf("Failed to create due for %s: %v", sm.email, err)
		}
	}

	if err := rehearsals.Create(ctx, &model.Rehearsal{
		Tipo:        "general",
		Nombre:      "Ensayo general semanal",
		Fecha:       today.AddDate(0, 0, 7),
		Hora:        "19:00",
		Lugar:       "Sala principal",
		Descripcion: "Repaso de repertorio de temporada",
		CreatedBy:   admin.ID,
	}); err != nil {
		log.Fatalf("Failed to create rehearsal: %v", err)
	}

	log.Println("Seed completed")
}

func seedUser(ctx context.Context, users repository.UserRepository, email, nombre, password string) (*model.User, error) {
	user, err := users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		Email:         email,
		PasswordHash:  hash,
		Nombre:        nombre,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func assignRole(ctx context.Context, roles repository.RoleRepository, user *model.User, role *model.Role) error {
	hasRole, err := roles.HasRole(ctx, user.ID, role.ID)
	if err != nil {
		return err
	}
	if hasRole {
		return nil
	}
	return roles.Assign(ctx, user.ID, role.ID)
}
