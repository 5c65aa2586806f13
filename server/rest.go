// Package server exposes the recommenders over a REST-ful API.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
	"github.com/prodrec/prodrec/config"
	"github.com/prodrec/prodrec/core"
	"github.com/prodrec/prodrec/model"
	"github.com/prodrec/prodrec/recommend"
)

// RestServer serves recommendations from a trained model and the raw rating
// records. Both are read-only after construction, so handlers need no locking.
type RestServer struct {
	Config     *config.Config
	Model      *model.TimeSVD
	Ratings    []core.Rating
	HttpHost   string
	HttpPort   int
	WebService *restful.WebService
}

// Health is the response of the health endpoint.
type Health struct {
	Ready bool `json:"ready"`
}

// StartHttpServer starts the REST-ful API server.
func (s *RestServer) StartHttpServer() {
	// register restful APIs
	s.CreateWebService()
	restful.DefaultContainer.Add(s.WebService)
	// register swagger document
	specConfig := restfulspec.Config{
		WebServices: restful.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}
	restful.DefaultContainer.Add(restfulspec.NewOpenAPIService(specConfig))
	// register prometheus
	http.Handle("/metrics", promhttp.Handler())

	log.Logger().Info("start http server",
		zap.String("url", fmt.Sprintf("http://%s:%d", s.HttpHost, s.HttpPort)))
	log.Logger().Fatal("failed to start http server",
		zap.Error(http.ListenAndServe(fmt.Sprintf("%s:%d", s.HttpHost, s.HttpPort), nil)))
}

// LogFilter logs every request with its status code and counts it.
func LogFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	chain.ProcessFilter(req, resp)
	RestAPIRequestTotal.WithLabelValues(req.SelectedRoutePath(), strconv.Itoa(resp.StatusCode())).Inc()
	log.Logger().Info(fmt.Sprintf("%s %s", req.Request.Method, req.Request.URL),
		zap.Int("status_code", resp.StatusCode()))
}

// CreateWebService creates web service.
func (s *RestServer) CreateWebService() {
	ws := s.WebService
	ws.Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Path("/api/")
	ws.Filter(LogFilter)

	// Recommend by the latent-factor model
	ws.Route(ws.GET("/recommend/model").To(s.getModelRecommend).
		Doc("Recommend products by the latent-factor model.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommend"}).
		Param(ws.QueryParameter("user-id", "identifier of the user").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned products").DataType("integer")).
		Param(ws.QueryParameter("include-rated", "include products the user already rated").DataType("boolean")).
		Writes([]core.Score{}))
	// Recommend by user similarity
	ws.Route(ws.GET("/recommend/user").To(s.getUserRecommend).
		Doc("Recommend products by similar users.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommend"}).
		Param(ws.QueryParameter("user-id", "identifier of the user").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned products").DataType("integer")).
		Param(ws.QueryParameter("k", "number of neighbors").DataType("integer")).
		Param(ws.QueryParameter("decay", "down-weight stale ratings").DataType("boolean")).
		Writes([]core.Score{}))
	// Top products
	ws.Route(ws.GET("/products/top").To(s.getTopProducts).
		Doc("Get the best rated products of the recent period.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"products"}).
		Param(ws.QueryParameter("n", "number of returned products").DataType("integer")).
		Param(ws.QueryParameter("days", "trailing window in days").DataType("integer")).
		Writes([]core.Score{}))
	// Health
	ws.Route(ws.GET("/health").To(s.getHealth).
		Doc("Check the health of the server.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
		Writes(Health{}))
}

func (s *RestServer) getModelRecommend(request *restful.Request, response *restful.Response) {
	defer timer(ModelRecommendSeconds)()
	userId := request.QueryParameter("user-id")
	if userId == "" {
		BadRequest(response, errors.BadRequestf("user-id is required"))
		return
	}
	n, err := ParseInt(request, "n", 10)
	if err != nil {
		BadRequest(response, err)
		return
	}
	includeRated, err := ParseBool(request, "include-rated", false)
	if err != nil {
		BadRequest(response, err)
		return
	}
	scores, err := recommend.Latent(s.Model, userId, time.Now(), !includeRated, n)
	if errors.IsNotFound(err) {
		PageNotFound(response, err)
		return
	} else if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, scores)
}

func (s *RestServer) getUserRecommend(request *restful.Request, response *restful.Response) {
	defer timer(UserBasedRecommendSeconds)()
	userId := request.QueryParameter("user-id")
	if userId == "" {
		BadRequest(response, errors.BadRequestf("user-id is required"))
		return
	}
	n, err := ParseInt(request, "n", 10)
	if err != nil {
		BadRequest(response, err)
		return
	}
	k, err := ParseInt(request, "k", s.Config.Neighbors.K)
	if err != nil {
		BadRequest(response, err)
		return
	}
	decay, err := ParseBool(request, "decay", false)
	if err != nil {
		BadRequest(response, err)
		return
	}
	var scores []core.Score
	if decay {
		scores, err = recommend.UserBasedWithDecay(s.Ratings, userId, k, n, s.Config.Neighbors.DaysTau)
	} else {
		scores, err = recommend.UserBased(s.Ratings, userId, k, n)
	}
	if errors.IsNotFound(err) {
		PageNotFound(response, err)
		return
	} else if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, scores)
}

func (s *RestServer) getTopProducts(request *restful.Request, response *restful.Response) {
	defer timer(TopProductsSeconds)()
	n, err := ParseInt(request, "n", 10)
	if err != nil {
		BadRequest(response, err)
		return
	}
	days, err := ParseInt(request, "days", s.Config.Popular.Days)
	if err != nil {
		BadRequest(response, err)
		return
	}
	Ok(response, recommend.TopProducts(s.Ratings, days, s.Config.Popular.MinRatings, n))
}

func (s *RestServer) getHealth(_ *restful.Request, response *restful.Response) {
	Ok(response, Health{Ready: s.Model != nil})
}

func timer(histogram interface{ Observe(float64) }) func() {
	start := time.Now()
	return func() {
		histogram.Observe(time.Since(start).Seconds())
	}
}

// ParseInt parses an integer query parameter with a default value.
func ParseInt(request *restful.Request, name string, _default int) (int, error) {
	if param := request.QueryParameter(name); param != "" {
		value, err := strconv.Atoi(param)
		return value, errors.Trace(err)
	}
	return _default, nil
}

// ParseBool parses a boolean query parameter with a default value.
func ParseBool(request *restful.Request, name string, _default bool) (bool, error) {
	if param := request.QueryParameter(name); param != "" {
		value, err := strconv.ParseBool(param)
		return value, errors.Trace(err)
	}
	return _default, nil
}

// BadRequest returns a bad request error.
func BadRequest(response *restful.Response, err error) {
	log.ResponseLogger(response).Error("bad request", zap.Error(err))
	if err = response.WriteError(http.StatusBadRequest, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// InternalServerError returns an internal server error.
func InternalServerError(response *restful.Response, err error) {
	log.ResponseLogger(response).Error("internal server error", zap.Error(err))
	if err = response.WriteError(http.StatusInternalServerError, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// PageNotFound returns a not found error.
func PageNotFound(response *restful.Response, err error) {
	if err := response.WriteError(http.StatusNotFound, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// Ok sends the content as JSON to the client.
func Ok(response *restful.Response, content interface{}) {
	if err := response.WriteAsJson(content); err != nil {
		log.Logger().Error("failed to write json", zap.Error(err))
	}
}
