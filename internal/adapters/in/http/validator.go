package http

import (
	"errors"
	"net/http"

	"marketplace/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// RequestValidator rejects requests that do not match the OpenAPI contract
// with a 400. Paths outside the contract pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	// match on path only, whatever host the API is served from
	doc.Servers = nil
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(validationErr),
				})
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "Invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason
		}
		if reqErr.RequestBody != nil {
			return "Invalid request body: " + reqErr.Error()
		}
	}
	return err.Error()
}
