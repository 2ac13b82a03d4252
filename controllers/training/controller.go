package controllers

import (
	"errors"

	"trainport/middleware"
	trainingService "trainport/services/training"

	"github.com/gofiber/fiber/v2"
)

// service is wired once at startup from main.
var service *trainingService.Service

// Setup injects the training service used by all handlers in this package.
func Setup(svc *trainingService.Service) {
	service = svc
}

// respondServiceError maps domain error kinds onto HTTP statuses. Storage
// errors fall through as 500 with the original message attached.
func respondServiceError(c *fiber.Ctx, err error) error {
	var notFound *trainingService.NotFoundError
	if errors.As(err, &notFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFound.Error(), nil)
	}
	var invalid *trainingService.ValidationError
	if errors.As(err, &invalid) {
		return middleware.ValidationErrorResponse(c, map[string]string{invalid.Field: invalid.Reason})
	}
	var locked *trainingService.ModuleLockedError
	if errors.As(err, &locked) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous module to unlock this one!", nil)
	}
	var noQuestions *trainingService.NoQuestionsError
	if errors.As(err, &noQuestions) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This module has no quiz to submit!", nil)
	}
	var conflict *trainingService.ConflictError
	if errors.As(err, &conflict) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, conflict.Error(), nil)
	}
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
}
