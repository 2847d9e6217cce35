/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/marker"
)

type HttpError struct {
	code int
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func NewHttpError(code int, err error) HttpError {
	return HttpError{
		code:  code,
		error: err,
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

type server struct {
	controller controller
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.POST("/pathways", validateBody, s.Pathways)
	r.POST("/pathways/:pathway/image", validateBody, s.MarkedImage)
	r.GET("/healthz", s.Healthz)
}

func (s server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{"status": http.StatusOK})
}

func (s server) Pathways(c *gin.Context) {
	kind, err := kindParam(c)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Set("kind", kind.String())
	allPaths, err := boolParam(c, "allpath")
	if err != nil {
		handleError(c, err)
		return
	}

	res, err := s.controller.Pathways(c.Request.Context(), c.Request.Body, kind, allPaths)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// MarkedImage accepts ko_number like Pathways; KEGG Mapper marks EC and KO numbers the same way,
// so the kind is only validated and recorded on the request log.
func (s server) MarkedImage(c *gin.Context) {
	kind, err := kindParam(c)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Set("kind", kind.String())

	data, contentType, err := s.controller.MarkedImage(c.Request.Context(), c.Param("pathway"), c.Request.Body)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

func kindParam(c *gin.Context) (enzyme.Kind, error) {
	ko, err := boolParam(c, "ko_number")
	if err != nil {
		return "", err
	}
	return enzyme.KindOf(ko), nil
}

func boolParam(c *gin.Context, name string) (bool, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, NewHttpError(http.StatusBadRequest, errors.New("invalid "+name+" query parameter - must be true or false"))
	}
	return b, nil
}

const requestIDHeader = "X-Request-Id"

// maxBodyBytes bounds an identifier list posted to the api.
var maxBodyBytes int64 = 1 << 20

// requestLogger puts a logger tagged with the request id on the request context.
func requestLogger(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := log.With().Str("request_id", requestID).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func validateBody(c *gin.Context) {
	if c.Request.Body == nil {
		handleError(c, NewHttpError(http.StatusBadRequest, errors.New("request body missing")))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	// peek one byte so an empty body is rejected before any KEGG call
	peek := make([]byte, 1)
	n, err := c.Request.Body.Read(peek)
	if n == 0 && err == io.EOF {
		handleError(c, NewHttpError(http.StatusBadRequest, errors.New("request body missing")))
		return
	} else if n == 0 && err != nil {
		handleError(c, NewHttpError(http.StatusBadRequest, err))
		return
	}
	c.Request.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(peek[:n]), c.Request.Body), Closer: c.Request.Body}
	c.Next()
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, http.StatusInternalServerError, errors.New("abort called on nil error"))
		return
	}

	var httpErr HttpError
	var tooLarge *http.MaxBytesError
	var serviceErr *marker.ServiceError
	switch {
	case errors.As(err, &httpErr):
		abort(c, httpErr.code, httpErr.error)
	case errors.As(err, &tooLarge):
		abort(c, http.StatusRequestEntityTooLarge, fmt.Errorf("request body larger than %d bytes", tooLarge.Limit))
	case errors.As(err, &serviceErr):
		abort(c, http.StatusBadGateway, err)
	default:
		abort(c, http.StatusInternalServerError, err)
	}
}

func abort(c *gin.Context, code int, err error) {
	c.JSON(code, map[string]interface{}{
		"status":  code,
		"message": err.Error(),
	})
	c.Abort()
}
