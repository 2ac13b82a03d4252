package adminValidator

import (
	"strconv"
	"strings"

	adminController "trainport/controllers/admin"
	"trainport/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// paramUint validates a positive integer path parameter and stores it in
// Locals under the given key.
func paramUint(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func CompanyParam() fiber.Handler { return paramUint("company_id", "companyID") }
func ModuleParam() fiber.Handler  { return paramUint("module_id", "moduleID") }
func MCQParam() fiber.Handler     { return paramUint("mcq_id", "mcqID") }
func TraineeParam() fiber.Handler { return paramUint("trainee_id", "traineeID") }

// CreateCompany validates company create/update requests
func CreateCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name"`
			LogoURL string `json:"logo_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if len(reqData.Name) < 2 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Company name must be at least 2 characters long!",
			})
		}

		c.Locals("validatedCompany", reqData)
		return c.Next()
	}
}

// CreateModule validates module create/update requests with struct tags.
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateMCQ validates question creation: at least two options, no blank
// or duplicate options, and the answer must be one of them.
func CreateMCQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.CreateMCQRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Question = strings.TrimSpace(reqData.Question)
		reqData.Answer = strings.TrimSpace(reqData.Answer)
		for i := range reqData.Options {
			reqData.Options[i] = strings.TrimSpace(reqData.Options[i])
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		seen := make(map[string]bool, len(reqData.Options))
		answerFound := false
		for _, option := range reqData.Options {
			if seen[option] {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"options": "Options must be unique!",
				})
			}
			seen[option] = true
			if option == reqData.Answer {
				answerFound = true
			}
		}
		if !answerFound {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answer": "Answer must be one of the options!",
			})
		}

		c.Locals("validatedMCQ", reqData)
		return c.Next()
	}
}

// Reassign validates the destructive company reassignment request.
func Reassign() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			NewCompanyID uint `json:"new_company_id"`
			Confirm      bool `json:"confirm"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.NewCompanyID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"new_company_id": "New company is required!",
			})
		}

		c.Locals("validatedReassign", reqData)
		return c.Next()
	}
}
