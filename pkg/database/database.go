package database

import (
	"fmt"
	"log"

	"levelup_backend/internal/config"
	"levelup_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Progress{},
		&model.Completion{},
		&model.Submission{},
		&model.SubmissionFile{},
		&model.PeerReview{},
		&model.ReviewRequest{},
		&model.RequestReview{},
		&model.TokenClaim{},
		&model.Certificate{},
		&model.UserCertificate{},
		&model.Notification{},
	)
}

// CheckCatalogIntegrity 确保每个 lesson 都挂在已知的 module 上，
// 每个 module 都挂在已知的 course 上
func CheckCatalogIntegrity(db *gorm.DB) error {
	var orphanLessons int64
	err := db.Model(&model.Lesson{}).
		Joins("LEFT JOIN course_modules ON course_modules.id = lessons.module_id AND course_modules.deleted_at IS NULL").
		Where("course_modules.id IS NULL").
		Count(&orphanLessons).Error
	if err != nil {
		return err
	}
	if orphanLessons > 0 {
		return fmt.Errorf("catalog integrity violation: %d lessons reference a missing module", orphanLessons)
	}

	var orphanModules int64
	err = db.Model(&model.CourseModule{}).
		Joins("LEFT JOIN courses ON courses.id = course_modules.course_id AND courses.deleted_at IS NULL").
		Where("courses.id IS NULL").
		Count(&orphanModules).Error
	if err != nil {
		return err
	}
	if orphanModules > 0 {
		return fmt.Errorf("catalog integrity violation: %d modules reference a missing course", orphanModules)
	}

	return nil
}

// SeedCatalog 首次启动时插入示例课程和对应的证书模板
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	course := &model.Course{
		Slug:          "webdev",
		Title:         "Web Development Fundamentals",
		Description:   "HTML, CSS and JavaScript from zero to a deployable project.",
		Level:         "Beginner",
		DurationLabel: "6 weeks",
		Modules: []model.CourseModule{
			{
				Title: "HTML & CSS Basics",
				Order: 1,
				Lessons: []model.Lesson{
					{
						Title:           "Introduction to HTML",
						Type:            model.LessonTypeLesson,
						Order:           1,
						DurationMinutes: 25,
						FilePath:        "html/intro-to-html.md",
					},
					{
						Title:           "Styling with CSS",
						Type:            model.LessonTypeLesson,
						Order:           2,
						DurationMinutes: 35,
						FilePath:        "html/styling-with-css.md",
					},
					{
						Title:           "Build a Contact Form",
						Type:            model.LessonTypeAssignment,
						Order:           3,
						DurationMinutes: 60,
						FilePath:        "html/contact-form-assignment.md",
						SubmissionType:  "files",
						AllowedTypes:    ".html,.css",
						MaxSizeMB:       5,
						MaxFiles:        3,
						RequiresURL:     true,
						Requirements:    "Submit a responsive contact form with client-side validation.",
					},
				},
			},
			{
				Title: "JavaScript Essentials",
				Order: 2,
				Lessons: []model.Lesson{
					{
						Title:           "JavaScript Syntax and Types",
						Type:            model.LessonTypeLesson,
						Order:           1,
						DurationMinutes: 40,
						FilePath:        "js/syntax-and-types.md",
					},
					{
						Title:           "Portfolio Project",
						Type:            model.LessonTypeProject,
						Order:           2,
						DurationMinutes: 180,
						FilePath:        "js/portfolio-project.md",
						SubmissionType:  "files",
						AllowedTypes:    ".html,.css,.js,.zip",
						MaxSizeMB:       10,
						MaxFiles:        5,
						RequiresURL:     true,
						RequiresGitHub:  true,
						Requirements:    "Deploy your portfolio and link the repository.",
					},
				},
			},
		},
	}

	if err := db.Create(course).Error; err != nil {
		return err
	}

	cert := &model.Certificate{
		CourseID:    course.ID,
		CourseName:  course.Title,
		Title:       course.Title + " Certificate",
		Description: "Certificate of completion for " + course.Title,
		IsClaimable: true,
	}
	return db.Create(cert).Error
}
