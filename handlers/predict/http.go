package predict

import (
	stderrors "errors"
	"net/http"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the predict handler on every route.
func RegisterRoutes(router gin.IRoutes, routes []string, g *Gateway) {
	for _, route := range routes {
		router.POST(route, g.HandlePredict)
	}
}

func (g *Gateway) HandlePredict(c *gin.Context) {
	req := &models.PredictionRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		abort(c, &errors.BadRequestError{ErrorMsg: "invalid JSON body: " + err.Error()})
		return
	}
	resp, err := g.Predict(c.Request.Context(), req)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(httpStatus(err), models.ErrorResponse{Error: err.Error()})
}

func httpStatus(err error) int {
	var (
		badRequest   *errors.BadRequestError
		parsing      *errors.ParsingError
		missingField *errors.MissingFieldError
		invalidDate  *errors.InvalidDateError
	)
	switch {
	case stderrors.As(err, &badRequest), stderrors.As(err, &parsing),
		stderrors.As(err, &missingField), stderrors.As(err, &invalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
