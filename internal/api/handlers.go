package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/broncospizza/orders-api/internal/domain"
)

// listCatalog serves one of the three catalog endpoints. An empty
// catalog is a 404: the service cannot compose orders without it.
func (s *Server) listCatalog(catalog domain.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := s.service.ListCatalog(c.Request.Context(), catalog)
		if err != nil {
			s.writeError(c, err)
			return
		}
		if len(names) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no %ss available", catalog)})
			return
		}
		c.JSON(http.StatusOK, names)
	}
}

func (s *Server) createOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := s.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully!",
		"order_id": id,
	})
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := s.orderID(c)
	if !ok {
		return
	}

	order, err := s.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := s.orderID(c)
	if !ok {
		return
	}

	var req domain.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.service.UpdateOrder(c.Request.Context(), id, &req); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order updated successfully!",
		"order_id": id,
	})
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := s.orderID(c)
	if !ok {
		return
	}

	if err := s.service.DeleteOrder(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order %d deleted successfully", id),
	})
}

// orderID parses the :id path parameter, answering 400 itself when the
// value is not an integer.
func (s *Server) orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return id, true
}

// writeError maps the typed error taxonomy onto status codes. Expected
// not-found conditions log at info; anything unrecognized is a storage
// fault: logged in full, answered with an opaque 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		malformed *domain.MalformedError
		invalid   *domain.InvalidChoiceError
		notFound  *domain.OrderNotFoundError
	)
	switch {
	case errors.As(err, &malformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": malformed.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         invalid.Error(),
			"valid_options": invalid.ValidOptions,
		})
	case errors.As(err, &notFound):
		s.logger.Infow("order not found", "order_id", notFound.ID)
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		s.logger.Errorw("server error",
			"error", err,
			"request_method", c.Request.Method,
			"request_uri", c.Request.URL.RequestURI(),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
