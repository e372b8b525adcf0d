package handler

import (
	"careerpath/internal/domain/profession"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfessionTestHandler struct {
	uc usecase.ProfessionTestUsecase
}

type createTestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type saveResultsRequest struct {
	Results map[string]any `json:"results"`
}

func NewProfessionTestHandler(uc usecase.ProfessionTestUsecase) *ProfessionTestHandler {
	return &ProfessionTestHandler{uc: uc}
}

func (h *ProfessionTestHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/profession-tests", auth, h.CreateTest)
	r.Get("/profession-tests", auth, h.ListTests)
	r.Get("/profession-tests/:testId", auth, h.GetTest)
	r.Post("/profession-tests/:testId/questions", auth, h.AddQuestion)
	r.Post("/profession-tests/:testId/results", auth, h.SaveResults)
	r.Get("/profession_descriptions", auth, h.ListDescriptions)
}

func (h *ProfessionTestHandler) CreateTest(c fiber.Ctx) error {
	var req createTestRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.CreateTest(c.Context(), req.Title, req.Description)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, created)
}

func (h *ProfessionTestHandler) ListTests(c fiber.Ctx) error {
	rows, err := h.uc.ListTests(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, rows)
}

func (h *ProfessionTestHandler) ListDescriptions(c fiber.Ctx) error {
	rows, err := h.uc.ProfessionDescriptions(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, rows)
}

func (h *ProfessionTestHandler) GetTest(c fiber.Ctx) error {
	test, err := h.uc.GetTestWithQuestions(c.Context(), c.Params("testId"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, test)
}

func (h *ProfessionTestHandler) AddQuestion(c fiber.Ctx) error {
	var req profession.NewQuestion
	if err := bindBody(c, &req); err != nil {
		return err
	}

	questionID, err := h.uc.AddQuestion(c.Context(), c.Params("testId"), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{
		"message":    "Question added successfully",
		"questionId": questionID,
	})
}

func (h *ProfessionTestHandler) SaveResults(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req saveResultsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.uc.SaveResults(c.Context(), userID, c.Params("testId"), req.Results)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Test results saved successfully",
		"result":  result,
	})
}
