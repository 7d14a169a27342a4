package v4

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/esp046-cyber/budget-tracker/internal/exchange"
	"github.com/esp046-cyber/budget-tracker/internal/httputil"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CsvImportData struct {
	Transactions int `json:"transactions" example:"12"` // Number of imported transactions
	Debts        int `json:"debts" example:"2"`         // Number of imported debts
	Goals        int `json:"goals" example:"1"`         // Number of imported goals
	Currencies   int `json:"currencies" example:"3"`    // Number of imported currencies
	Limits       int `json:"limits" example:"4"`        // Number of imported budget limits
	Skipped      int `json:"skipped" example:"1"`       // Number of rows that could not be parsed
}

type CsvImportResponse struct {
	Data  *CsvImportData `json:"data"`  // Counts for the imported resources
	Error *string        `json:"error"` // The error, if any occurred
}

// RegisterCsvRoutes registers the routes for the CSV exchange format
// with the RouterGroup that is passed.
func RegisterCsvRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCsv)
		r.GET("", GetCsv)
		r.POST("", ImportCsv)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Csv
// @Success		204
// @Router			/v4/csv [options]
func OptionsCsv(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		CSV export
// @Description	Exports the full dataset in the CSV exchange format. Materialized recurring instances are left out, they are regenerated by recurrence expansion after an import.
// @Tags			Csv
// @Produce		text/csv
// @Success		200
// @Failure		500	{object}	httpError
// @Router			/v4/csv [get]
func GetCsv(c *gin.Context) {
	var data exchange.Dataset

	err := models.DB.Order("datetime(transactions.date) ASC").Find(&data.Transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Order("name ASC").Find(&data.Debts).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Order("name ASC").Find(&data.Goals).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Order("code ASC").Find(&data.Currencies).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Order("position ASC").Find(&data.Limits).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := exchange.Export(&buf, data); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="budget-export.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary		CSV import
// @Description	Imports a dataset in the CSV exchange format. Rows that cannot be parsed are skipped and counted. Parsed resources are persisted in a single database transaction, a database error rolls back the whole import.
// @Tags			Csv
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	CsvImportResponse
// @Failure		400		{object}	CsvImportResponse
// @Failure		500		{object}	CsvImportResponse
// @Param			file	formData	file	true	"The CSV file to import"
// @Router			/v4/csv [post]
func ImportCsv(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		s := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, CsvImportResponse{
			Error: &s,
		})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CsvImportResponse{
			Error: &s,
		})
		return
	}

	if !strings.HasSuffix(formFile.Filename, ".csv") {
		s := errWrongFileSuffix.Error()
		c.JSON(http.StatusBadRequest, CsvImportResponse{
			Error: &s,
		})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CsvImportResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	result, err := exchange.Import(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CsvImportResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return persistDataset(tx, result.Dataset)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CsvImportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, CsvImportResponse{
		Data: &CsvImportData{
			Transactions: len(result.Dataset.Transactions),
			Debts:        len(result.Dataset.Debts),
			Goals:        len(result.Dataset.Goals),
			Currencies:   len(result.Dataset.Currencies),
			Limits:       len(result.Dataset.Limits),
			Skipped:      result.Skipped,
		},
	})
}

// persistDataset writes a parsed dataset. Currencies and limits are
// upserted by their natural key, categories referenced by transactions or
// limits are created on the fly so that the transaction validation finds
// them.
func persistDataset(tx *gorm.DB, data exchange.Dataset) error {
	for _, currency := range data.Currencies {
		code := strings.ToUpper(strings.TrimSpace(currency.Code))

		var count int64
		err := tx.Model(&models.Currency{}).Where("code = ?", code).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			var existing models.Currency
			if err := tx.Where("code = ?", code).First(&existing).Error; err != nil {
				return err
			}

			existing.Rate = currency.Rate
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			continue
		}

		currency := currency
		if err := tx.Create(&currency).Error; err != nil {
			return err
		}
	}

	names := make(map[string]bool)
	for _, transaction := range data.Transactions {
		names[strings.TrimSpace(transaction.Category)] = true
	}
	for _, limit := range data.Limits {
		names[strings.TrimSpace(limit.Category)] = true
	}

	for name := range names {
		if name == "" {
			continue
		}

		var count int64
		err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
		if err != nil {
			return err
		}

		if count == 0 {
			if err := tx.Create(&models.Category{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	for _, limit := range data.Limits {
		category := strings.TrimSpace(limit.Category)

		var count int64
		err := tx.Model(&models.BudgetLimit{}).Where("category = ?", category).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			var existing models.BudgetLimit
			if err := tx.Where("category = ?", category).First(&existing).Error; err != nil {
				return err
			}

			existing.Threshold = limit.Threshold
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			continue
		}

		limit := limit
		if err := tx.Create(&limit).Error; err != nil {
			return err
		}
	}

	for _, debt := range data.Debts {
		debt := debt
		if err := tx.Create(&debt).Error; err != nil {
			return err
		}
	}

	for _, goal := range data.Goals {
		goal := goal
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}
	}

	for _, transaction := range data.Transactions {
		transaction := transaction
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
	}

	return nil
}
