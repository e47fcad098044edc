package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sndbilling/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatementHandler serves billing statement downloads.
type StatementHandler struct {
	statements service.StatementService
}

func NewStatementHandler(statements service.StatementService) *StatementHandler {
	return &StatementHandler{statements: statements}
}

// Download handles GET /api/v1/rentals/:id/statement.
//
// @Summary Download a rental billing statement
// @Description Render the rental's billable lines and invoice history as an xlsx workbook
// @Tags statements
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Rental ID"
// @Param month query string false "Billing month (YYYY-MM); defaults to the current terms window"
// @Success 200 {file} binary "Statement workbook"
// @Failure 404 {object} APIResponse "Rental not found"
// @Router /api/v1/rentals/{id}/statement [get]
func (h *StatementHandler) Download(c *gin.Context) {
	rentalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "rental id must be an integer")
		return
	}

	var buf bytes.Buffer
	if err := h.statements.WriteStatement(c.Request.Context(), rentalID, c.Query("month"), &buf); err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	filename := fmt.Sprintf("rental-%d-statement.xlsx", rentalID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
