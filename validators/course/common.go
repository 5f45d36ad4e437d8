package courseValidator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"courseservice/middleware"
	"courseservice/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and returns field -> message, or nil when valid.
func validateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long!", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater!", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid!", fe.Field())
	}
}

// presentFields decodes the body a second time to learn which keys the client sent.
// Values are the raw JSON, so an explicit null is reported as "null".
func presentFields(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(c.Body()) == 0 {
		return raw, nil
	}
	if err := c.App().Config().JSONDecoder(c.Body(), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func isNull(v json.RawMessage) bool {
	return strings.TrimSpace(string(v)) == "null"
}

// buildPatch turns the present keys into a column patch. values maps every updatable
// field (JSON name equals column name) to its decoded value; required names the fields
// that may not be null.
func buildPatch(present map[string]json.RawMessage, values map[string]*string, required map[string]bool) (repositories.Patch, map[string]string) {
	patch := repositories.Patch{}
	errs := make(map[string]string)
	for field, value := range values {
		raw, ok := present[field]
		if !ok {
			continue
		}
		if isNull(raw) {
			if required[field] {
				errs[field] = fmt.Sprintf("%s cannot be null!", field)
				continue
			}
			patch[field] = nil
			continue
		}
		patch[field] = *value
	}
	return patch, errs
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func toUint(v *int64) uint {
	if v == nil {
		return 0
	}
	return uint(*v)
}

// ParseID validates a positive integer path parameter and stores it in Locals under key.
func ParseID(param, key, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(key, uint(id))
		return c.Next()
	}
}

type ListQuery struct {
	Skip  *int `json:"skip" query:"skip" validate:"omitempty,gte=0"`
	Limit *int `json:"limit" query:"limit" validate:"omitempty,gte=0"`
}

// Page applies the defaults skip=0, limit=100. There is no upper bound on limit.
func (q *ListQuery) Page() repositories.Page {
	page := repositories.DefaultPage()
	if q.Skip != nil {
		page.Skip = *q.Skip
	}
	if q.Limit != nil {
		page.Limit = *q.Limit
	}
	return page
}

// List validates skip/limit query parameters and stores the page as "page".
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errs := validateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("page", reqData.Page())
		return c.Next()
	}
}

func setError(errors map[string]string, field, msg string) map[string]string {
	if errors == nil {
		errors = make(map[string]string)
	}
	errors[field] = msg
	return errors
}
