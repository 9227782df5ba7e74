package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aks1489/icstconnect-sub000/internal/config"
	"github.com/aks1489/icstconnect-sub000/internal/database"
	"github.com/aks1489/icstconnect-sub000/internal/logger"
	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/repository"
	"github.com/aks1489/icstconnect-sub000/internal/service"
)

// Seeds a small demo catalog: two courses with a class each, a batch of
// enrolled students, one weekly schedule rule per class and a holiday.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	courseRepo := repository.NewCourseRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ruleRepo := repository.NewScheduleRuleRepository(pool)

	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo, authService)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo)
	scheduleService := service.NewScheduleService(ruleRepo, eventRepo, courseRepo, classRepo, rdb, log)
	eventService := service.NewEventService(eventRepo, courseRepo, classRepo, rdb, log)

	fmt.Println("=== Seeding Demo Data ===")

	courses := []model.Course{
		{Name: "Full Stack Web Development", Code: "FSWD", Color: "#2563eb", DurationMonths: 6, Description: "HTML, CSS, JavaScript, Node.js and React."},
		{Name: "Python for Data Science", Code: "PYDS", Color: "#16a34a", DurationMonths: 4, Description: "Python, pandas and introductory machine learning."},
	}
	ruleSpecs := []model.CreateScheduleRuleRequest{
		{Weekdays: []string{"Monday", "Wednesday"}, StartTime: "18:00:00", DurationMinutes: 90},
		{Weekdays: []string{"Tuesday", "Thursday"}, StartTime: "17:00:00", DurationMinutes: 60},
	}

	var classIDs []int
	for i := range courses {
		course := &courses[i]
		if err := courseRepo.Create(ctx, course); err != nil {
			log.Fatal().Err(err).Str("course", course.Code).Msg("Failed to create course")
		}
		fmt.Printf("Created course %s (ID %d)\n", course.Code, course.ID)

		class := &model.Class{CourseID: course.ID, Name: "Batch A", Capacity: 30}
		if err := classRepo.Create(ctx, class); err != nil {
			log.Fatal().Err(err).Msg("Failed to create class")
		}
		classIDs = append(classIDs, class.ID)

		ruleSpecs[i].CourseID = course.ID
		ruleSpecs[i].ClassID = class.ID
		ruleSpecs[i].StartDate = time.Now().UTC().Format("2006-01-02")
		if _, err := scheduleService.CreateRule(ctx, &ruleSpecs[i], cfg.EagerMaterialize); err != nil {
			log.Fatal().Err(err).Msg("Failed to create schedule rule")
		}
		fmt.Printf("Created class %d with weekly schedule\n", class.ID)
	}

	names := []string{
		"Arjun Mehta", "Priya Sharma", "Rohan Das", "Ananya Sen", "Vikram Rao",
		"Ishita Bose", "Kunal Verma", "Sneha Iyer", "Aditya Ghosh", "Meera Nair",
		"Rahul Joshi", "Tanvi Kulkarni", "Sameer Khan", "Divya Pillai", "Nikhil Roy",
		"Pooja Reddy", "Aman Gupta", "Riya Chatterjee", "Varun Malhotra", "Kavya Menon",
	}

	successCount := 0
	for i, name := range names {
		student, err := studentService.Create(ctx, &model.CreateStudentRequest{
			Name:     name,
			Email:    fmt.Sprintf("student%02d@example.com", i+1),
			Phone:    fmt.Sprintf("+91-90000000%02d", i+1),
			Password: "changeme",
		})
		if err != nil {
			fmt.Printf("Error creating student %s: %v\n", name, err)
			continue
		}

		classID := classIDs[i%len(classIDs)]
		if _, err := enrollmentService.Enroll(ctx, &model.CreateEnrollmentRequest{
			StudentID: student.ID,
			ClassID:   classID,
		}); err != nil {
			fmt.Printf("Error enrolling student %s: %v\n", name, err)
			continue
		}
		successCount++
	}

	// A global holiday two weeks out.
	holidayDate := time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")
	if _, err := eventService.CreateHoliday(ctx, &model.CreateHolidayRequest{
		Title: "Institute Foundation Day",
		Date:  holidayDate,
	}); err != nil {
		fmt.Printf("Error creating holiday: %v\n", err)
	}

	fmt.Printf("\nSeed completed! Enrolled %d/%d students.\n", successCount, len(names))
}
