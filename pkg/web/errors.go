package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/readyreserve/readyflow/pkg/deploy"
	"github.com/readyreserve/readyflow/pkg/persistence"
	"github.com/readyreserve/readyflow/pkg/services"
	"github.com/readyreserve/readyflow/pkg/templates"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithDetail("something went wrong, please try again")

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// packageFailure reports an incomplete or invalid configuration with the
// full field and graph problem lists.
func packageFailure(c fiber.Ctx, pkgErr *deploy.PackageError) error {
	response := PackageFailureResponse{
		AutomationID:  pkgErr.AutomationID,
		MissingFields: pkgErr.MissingFields(),
		Timestamp:     time.Now().UTC(),
	}

	for _, fe := range pkgErr.FieldErrors {
		response.Problems = append(response.Problems, fe.Error())
	}

	for _, ge := range pkgErr.GraphErrors {
		response.Problems = append(response.Problems, ge.Error())
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(response)
}

// handleServiceError is the single mapping point from the service error
// taxonomy to problem+json responses. No category crashes a request.
func handleServiceError(c fiber.Ctx, err error) error {
	var pkgErr *deploy.PackageError
	if errors.As(err, &pkgErr) {
		return packageFailure(c, pkgErr)
	}

	switch {
	case errors.Is(err, templates.ErrTemplateNotFound),
		persistence.IsAutomationNotFound(err):
		return notFound(c, "automation not found")

	case persistence.IsConfigNotFound(err):
		return notFound(c, "configuration not found")

	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case services.IsConfigurationError(err):
		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("configuration_error").
			WithDetail(err.Error())

		return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)

	case services.IsConnectivityError(err):
		problem := problems.NewStatusProblem(502).
			WithInstance(c.Path()).
			WithType("engine_unreachable").
			WithDetail("the workflow engine did not respond, please try again")

		return c.Status(fiber.StatusBadGateway).JSON(problem)

	default:
		return internalError(c)
	}
}
