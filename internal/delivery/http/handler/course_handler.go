package handler

import (
	"careerpath/internal/domain/course"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CourseHandler struct {
	uc usecase.CourseUsecase
}

type createCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type createChapterQuestionRequest struct {
	Question any `json:"question"`
	Options  any `json:"options"`
}

func NewCourseHandler(uc usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/courses", auth, h.CreateCourse)
	r.Get("/courses", auth, h.ListCourses)
	r.Get("/courses/:courseId", auth, h.GetCourse)
	r.Post("/courses/:courseId/chapters", auth, h.CreateChapter)
	r.Get("/chapters/:chapterId/questions", auth, h.GetChapterQuestions)
	r.Post("/chapters/:chapterId/questions", auth, h.CreateChapterQuestion)
}

func (h *CourseHandler) CreateCourse(c fiber.Ctx) error {
	var req createCourseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.CreateCourse(c.Context(), req.Title, req.Description)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, created)
}

func (h *CourseHandler) ListCourses(c fiber.Ctx) error {
	rows, err := h.uc.ListCourses(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, rows)
}

func (h *CourseHandler) GetCourse(c fiber.Ctx) error {
	row, err := h.uc.GetCourseWithChapters(c.Context(), c.Params("courseId"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, row)
}

func (h *CourseHandler) CreateChapter(c fiber.Ctx) error {
	var req course.NewChapter
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.CreateChapter(c.Context(), c.Params("courseId"), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, created)
}

func (h *CourseHandler) GetChapterQuestions(c fiber.Ctx) error {
	row, err := h.uc.GetChapterQuestions(c.Context(), c.Params("chapterId"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, row)
}

func (h *CourseHandler) CreateChapterQuestion(c fiber.Ctx) error {
	var req createChapterQuestionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.CreateChapterQuestion(c.Context(), c.Params("chapterId"), req.Question, req.Options)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, created)
}
