package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
)

// Helpers comunes a los handlers CRUD: parseo del cuerpo, id de la ruta y mapeo de errores.

func createWith[Req any, Resp any](c *fiber.Ctx, fn func(context.Context, Req) (*Resp, error)) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := fn(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func updateWith[Req any, Resp any](c *fiber.Ctx, fn func(context.Context, string, Req) (*Resp, error)) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := fn(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func getWith[Resp any](c *fiber.Ctx, fn func(context.Context, string) (*Resp, error)) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := fn(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func listWith[Resp any](c *fiber.Ctx, items []Resp, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

func deleteWith(c *fiber.Ctx, fn func(context.Context, string) error) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := fn(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
}
