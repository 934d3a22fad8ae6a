package adminapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/common"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// ProductStore covers the inventory catalog.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (string, error)
	UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

func (s *Server) registerProductRoutes(web *webserver.WebServer) {
	web.ApiGET("/products", s.listProducts)
	web.ApiGET("/products/:id", s.getProduct)
	web.ApiGET("/products/:id/image", s.getProductImage)
	web.ApiGET("/products/category/:category", s.productsByCategory)
	web.ApiPOST("/products", s.createProduct)
	web.ApiPUT("/products/:id", s.updateProduct)
	web.ApiDELETE("/products/:id", s.deleteProduct)
}

func (s *Server) listProducts(c echo.Context) error {
	products, err := s.store.ListProducts(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "products")
	}
	return ok(c, products)
}

func (s *Server) productsByCategory(c echo.Context) error {
	products, err := s.store.ProductsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return failFrom(c, err, "products")
	}
	return ok(c, products)
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.store.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "product")
	}
	return ok(c, p)
}

// getProductImage serves the stored picture as a plain binary response.
func (s *Server) getProductImage(c echo.Context) error {
	p, err := s.store.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "product")
	}
	mediaType, data, err := common.DecodeDataURI(p.Image)
	if err != nil {
		return fail(c, http.StatusNotFound, "NO_IMAGE", "Product has no stored image", nil)
	}
	return c.Blob(http.StatusOK, mediaType, data)
}

type productPayload struct {
	Name         string             `json:"name" form:"name"`
	Category     string             `json:"category" form:"category"`
	Unit         string             `json:"unit" form:"unit"`
	PricePerUnit *float64           `json:"pricePerUnit" form:"pricePerUnit"`
	Supplier     string             `json:"supplier" form:"supplier"`
	AltSupplier  string             `json:"altSupplier" form:"altSupplier"`
	Image        string             `json:"image"`
	PackageSize  *float64           `json:"packageSize" form:"packageSize"`
	Demand       map[string]float64 `json:"demand"`
	ScheduleDays []string           `json:"scheduleDays"`
}

// bindProduct accepts either plain JSON or a multipart form. On multipart the
// image arrives as a file field and the structured demand/schedule fields as
// JSON-encoded form values.
func bindProduct(c echo.Context) (*productPayload, error) {
	var payload productPayload
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		if err := c.Bind(&payload); err != nil {
			return nil, err
		}
		return &payload, nil
	}

	if err := c.Bind(&payload); err != nil {
		return nil, err
	}
	if v := c.FormValue("demand"); v != "" {
		if err := json.Unmarshal([]byte(v), &payload.Demand); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed demand field")
		}
	}
	if v := c.FormValue("scheduleDays"); v != "" {
		if err := json.Unmarshal([]byte(v), &payload.ScheduleDays); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed scheduleDays field")
		}
	}
	fh, err := c.FormFile("image")
	if err != nil {
		// No file attached; create decides whether that is acceptable.
		return &payload, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	payload.Image = common.EncodeDataURI(fh.Header.Get("Content-Type"), data)
	return &payload, nil
}

func (p *productPayload) validateCreate() (int, string, string) {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return http.StatusBadRequest, "MISSING_NAME", "Product name is required"
	case strings.TrimSpace(p.Category) == "":
		return http.StatusBadRequest, "MISSING_CATEGORY", "Product category is required"
	case !domain.ValidUnit(p.Unit):
		return http.StatusBadRequest, "INVALID_UNIT", "Unit must be one of: " + strings.Join(domain.Units, ", ")
	case p.PricePerUnit == nil || *p.PricePerUnit < 0:
		return http.StatusBadRequest, "INVALID_PRICE", "Price per unit must not be negative"
	case strings.TrimSpace(p.Supplier) == "":
		return http.StatusBadRequest, "MISSING_SUPPLIER", "Product supplier is required"
	case p.Image == "":
		return http.StatusBadRequest, "MISSING_IMAGE", "Product image is required"
	case !common.IsDataURI(p.Image):
		return http.StatusBadRequest, "INVALID_IMAGE", "Product image must be a data URI"
	}
	return 0, "", ""
}

func (s *Server) createProduct(c echo.Context) error {
	payload, err := bindProduct(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if status, code, msg := payload.validateCreate(); status != 0 {
		return fail(c, status, code, msg, nil)
	}

	p := &domain.Product{
		Name:         strings.TrimSpace(payload.Name),
		Category:     strings.TrimSpace(payload.Category),
		Unit:         payload.Unit,
		PricePerUnit: *payload.PricePerUnit,
		Supplier:     payload.Supplier,
		AltSupplier:  payload.AltSupplier,
		Image:        payload.Image,
		PackageSize:  1,
		Demand:       payload.Demand,
		ScheduleDays: payload.ScheduleDays,
	}
	if payload.PackageSize != nil && *payload.PackageSize > 0 {
		p.PackageSize = *payload.PackageSize
	}

	id, err := s.store.CreateProduct(c.Request().Context(), p)
	if err != nil {
		return failFrom(c, err, "product")
	}
	metrics.RecordEntityOperation("product", "create")
	s.record(c, "create", "product", id, p.Name)
	return created(c, p)
}

func (s *Server) updateProduct(c echo.Context) error {
	payload, err := bindProduct(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}

	patch := map[string]interface{}{}
	if v := strings.TrimSpace(payload.Name); v != "" {
		patch["name"] = v
	}
	if v := strings.TrimSpace(payload.Category); v != "" {
		patch["category"] = v
	}
	if payload.Unit != "" {
		if !domain.ValidUnit(payload.Unit) {
			return fail(c, http.StatusBadRequest, "INVALID_UNIT", "Unit must be one of: "+strings.Join(domain.Units, ", "), nil)
		}
		patch["unit"] = payload.Unit
	}
	if payload.PricePerUnit != nil {
		if *payload.PricePerUnit < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Price per unit must not be negative", nil)
		}
		patch["pricePerUnit"] = *payload.PricePerUnit
	}
	if payload.Supplier != "" {
		patch["supplier"] = payload.Supplier
	}
	if payload.AltSupplier != "" {
		patch["altSupplier"] = payload.AltSupplier
	}
	if payload.PackageSize != nil && *payload.PackageSize > 0 {
		patch["packageSize"] = *payload.PackageSize
	}
	if payload.Demand != nil {
		patch["demand"] = payload.Demand
	}
	if payload.ScheduleDays != nil {
		patch["scheduleDays"] = payload.ScheduleDays
	}
	if payload.Image != "" {
		if !common.IsDataURI(payload.Image) {
			return fail(c, http.StatusBadRequest, "INVALID_IMAGE", "Product image must be a data URI", nil)
		}
		patch["image"] = payload.Image
	}
	if len(patch) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_PATCH", "No fields to update", nil)
	}

	p, err := s.store.UpdateProduct(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return failFrom(c, err, "product")
	}
	metrics.RecordEntityOperation("product", "update")
	s.record(c, "update", "product", c.Param("id"), "")
	return ok(c, p)
}

func (s *Server) deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.DeleteProduct(c.Request().Context(), id); err != nil {
		return failFrom(c, err, "product")
	}
	metrics.RecordEntityOperation("product", "delete")
	s.record(c, "delete", "product", id, "")
	return ok(c, map[string]string{"id": id})
}
