package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response estructura uniforme de respuesta (según el contrato de la API)
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Pagination metadatos de paginación
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData datos de una respuesta paginada
// Meta transporta agregados del listado (p. ej. el recuento de no leídas).
type PageData struct {
	List       interface{} `json:"list"`
	Meta       interface{} `json:"meta,omitempty"`
	Pagination Pagination  `json:"pagination"`
}

// ── Respuestas de éxito ──

// OK 200 éxito
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 creado
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// OKPage 200 éxito paginado
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	OKPageMeta(c, list, nil, total, page, pageSize)
}

// OKPageMeta 200 éxito paginado con bloque meta
func OKPageMeta(c *gin.Context, list, meta interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data: PageData{
			List: list,
			Meta: meta,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// ── Respuestas de error ──

// Error respuesta de error genérica
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ── Atajos habituales ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "error interno del servidor")
}
