package service

import (
	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"
)

// CatalogService 课程目录只读访问。课时顺序 = 章节序内的课时序展平。
type CatalogService struct {
	CourseRepo *repository.CourseRepository
}

func NewCatalogService(courseRepo *repository.CourseRepository) *CatalogService {
	return &CatalogService{CourseRepo: courseRepo}
}

func (s *CatalogService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}

func (s *CatalogService) GetCourseByID(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

// GetLessonByID 在课程结构内定位课时
func (s *CatalogService) GetLessonByID(course *model.Course, lessonID uint) (*model.Lesson, error) {
	for mi := range course.Modules {
		for li := range course.Modules[mi].Lessons {
			if course.Modules[mi].Lessons[li].ID == lessonID {
				return &course.Modules[mi].Lessons[li], nil
			}
		}
	}
	return nil, util.ErrLessonNotFound
}

// FlattenLessons 按章节序展平课时，索引即全局课时顺序
func (s *CatalogService) FlattenLessons(course *model.Course) []model.Lesson {
	var lessons []model.Lesson
	for _, module := range course.Modules {
		lessons = append(lessons, module.Lessons...)
	}
	return lessons
}

// NextLesson 展平序中的后继课时，最后一课返回 nil
func (s *CatalogService) NextLesson(course *model.Course, lessonID uint) *model.Lesson {
	lessons := s.FlattenLessons(course)
	for i := range lessons {
		if lessons[i].ID == lessonID && i+1 < len(lessons) {
			return &lessons[i+1]
		}
	}
	return nil
}

// PreviousLesson 展平序中的前驱课时，第一课返回 nil
func (s *CatalogService) PreviousLesson(course *model.Course, lessonID uint) *model.Lesson {
	lessons := s.FlattenLessons(course)
	for i := range lessons {
		if lessons[i].ID == lessonID && i > 0 {
			return &lessons[i-1]
		}
	}
	return nil
}

// ModuleForLesson 课时所属章节
func (s *CatalogService) ModuleForLesson(course *model.Course, lessonID uint) *model.CourseModule {
	for mi := range course.Modules {
		for li := range course.Modules[mi].Lessons {
			if course.Modules[mi].Lessons[li].ID == lessonID {
				return &course.Modules[mi]
			}
		}
	}
	return nil
}
