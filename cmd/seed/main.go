package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"riskwatch/internal/app"
	"riskwatch/internal/config"
	"riskwatch/internal/model"
	"riskwatch/internal/service"

	"github.com/spf13/viper"
)

type seedStudent struct {
	name     string
	age      int
	features model.FeatureVector
}

var students = []seedStudent{
	{"Alex Rivera", 19, model.FeatureVector{AttendanceRate: 96, GPA: 3.7, FinancialStressScore: 0.1, FamilySupportScore: 0.9}},
	{"Jordan Lee", 20, model.FeatureVector{AttendanceRate: 78, GPA: 2.8, FinancialStressScore: 0.4, FamilySupportScore: 0.6}},
	{"Sam Patel", 18, model.FeatureVector{AttendanceRate: 61, GPA: 2.1, FinancialStressScore: 0.7, FamilySupportScore: 0.4}},
	{"Taylor Nguyen", 21, model.FeatureVector{AttendanceRate: 35, GPA: 1.2, FinancialStressScore: 0.9, FamilySupportScore: 0.1}},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatal(err)
	}

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close(context.Background())

	authSvc := service.NewAuthService(store.Users, cfg.JWTSecret, cfg.TokenTTL)
	accounts := []model.RegisterRequest{
		{Email: "admin@riskwatch.local", Password: "admin-password", Name: "Admin", Role: model.RoleAdmin},
		{Email: "counselor@riskwatch.local", Password: "counselor-password", Name: "Counselor", Role: model.RoleCounselor},
	}
	var actorID string
	for _, req := range accounts {
		user, err := authSvc.CreateAccount(ctx, req)
		if errors.Is(err, service.ErrEmailTaken) {
			fmt.Printf("Account %s already exists\n", req.Email)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to create %s: %v", req.Email, err)
		}
		actorID = user.ID
		fmt.Printf("Created %s account %s\n", user.Role, user.Email)
	}

	engine, err := app.NewEngine(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	studentSvc := service.NewStudentService(store.Students)
	riskSvc := service.NewRiskService(engine, store.Students, store.Assessments)

	for _, s := range students {
		fv := s.features
		student, err := studentSvc.Create(ctx, model.CreateStudentRequest{Name: s.name, Age: s.age, Features: &fv})
		if err != nil {
			log.Fatalf("Failed to create student %s: %v", s.name, err)
		}
		a, err := riskSvc.AssessStudent(ctx, actorID, student.ID, nil)
		if err != nil {
			log.Fatalf("Failed to assess %s: %v", s.name, err)
		}
		fmt.Printf("Seeded %s (%s risk, p=%.2f)\n", student.Name, a.Tier, a.Probability)
	}
}
