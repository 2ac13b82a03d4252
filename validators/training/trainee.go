package trainingValidator

import (
	"strconv"
	"strings"

	"trainport/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModuleParam validates the :module_id path parameter and stores it as uint.
func ModuleParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("module_id"))
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}
		c.Locals("moduleID", uint(id))
		return c.Next()
	}
}

// SubmitQuiz validates the quiz submission body. The answers object maps
// question ids (JSON keys, so strings) to the selected option text.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "Answers object is required!",
			})
		}

		answers := make(map[uint]string, len(reqData.Answers))
		for key, selected := range reqData.Answers {
			id, err := strconv.ParseUint(key, 10, 32)
			if err != nil || id == 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"answers": "Answer keys must be question IDs!",
				})
			}
			answers[uint(id)] = strings.TrimSpace(selected)
		}

		c.Locals("validatedAnswers", answers)
		return c.Next()
	}
}

// TimeSpent validates the time tracking body.
func TimeSpent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Seconds *int64 `json:"seconds"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Seconds == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"seconds": "Seconds is required!",
			})
		}
		if *reqData.Seconds < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"seconds": "Seconds must not be negative!",
			})
		}

		c.Locals("validatedTimeSpent", *reqData.Seconds)
		return c.Next()
	}
}
