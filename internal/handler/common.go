package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "reflect"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/go-playground/validator/v10/non-standard/validators"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/repository"
)

// dbTimeout bounds the storage calls of a single request.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}

var validate = newValidator()

func newValidator() *validator.Validate {
    v := validator.New(validator.WithRequiredStructEnabled())
    // report json names so messages match the request body
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
        panic(err)
    }
    return v
}

// bind decodes the JSON body into dst and runs the struct validations.
// Missing required fields produce 400 "Missing required fields: a, b".
func bind(c echo.Context, dst any) error {
    if err := decode(c, dst); err != nil {
        return err
    }
    return check(dst)
}

// decode reads the JSON body into dst without validating it.
func decode(c echo.Context, dst any) error {
    if err := json.NewDecoder(c.Request().Body).Decode(dst); err != nil {
        var te *json.UnmarshalTypeError
        if errors.As(err, &te) && te.Field != "" {
            return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for field: "+te.Field)
        }
        return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
    }
    return nil
}

func check(v any) error {
    err := validate.Struct(v)
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) {
        return err
    }
    var missing, invalid []string
    for _, fe := range verrs {
        switch fe.Tag() {
        case "required", "notblank":
            missing = append(missing, fe.Field())
        default:
            invalid = append(invalid, fe.Field())
        }
    }
    if len(missing) > 0 {
        return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
    }
    return echo.NewHTTPError(http.StatusBadRequest, "Invalid fields: "+strings.Join(invalid, ", "))
}

// pathID parses a numeric path parameter.  Anything else is an unknown
// route, so it yields echo.ErrNotFound ("Endpoint not found").
func pathID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, echo.ErrNotFound
    }
    return id, nil
}

// queryBool parses ?name=true|false; anything else means "not set".
func queryBool(c echo.Context, name string) *bool {
    b, err := strconv.ParseBool(c.QueryParam(name))
    if err != nil {
        return nil
    }
    return &b
}

func queryInt(c echo.Context, name string, def int) int {
    n, err := strconv.Atoi(c.QueryParam(name))
    if err != nil || n < 0 {
        return def
    }
    return n
}

// storeError maps repository sentinels to HTTP errors.  notFound is the
// resource specific 404 message.  Other errors pass through and become
// a 500 carrying their text.
func storeError(err error, notFound string) error {
    switch {
    case errors.Is(err, repository.ErrNotFound):
        return echo.NewHTTPError(http.StatusNotFound, notFound)
    case errors.Is(err, repository.ErrConflict):
        return echo.NewHTTPError(http.StatusConflict, "Resource already exists")
    case errors.Is(err, repository.ErrNothingToUpdate):
        return echo.NewHTTPError(http.StatusBadRequest, "No fields to update")
    case errors.Is(err, repository.ErrUnknownColumn):
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    case errors.Is(err, repository.ErrUnavailable):
        return echo.NewHTTPError(http.StatusServiceUnavailable, "Key-value store unavailable")
    }
    return err
}

// nonNil turns a nil slice into an empty one so lists encode as [].
func nonNil[T any](s []T) []T {
    if s == nil {
        return []T{}
    }
    return s
}
