package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/antojo-app/backend/api/validators"
	"github.com/antojo-app/backend/pkg/db/models"
	"github.com/antojo-app/backend/pkg/enums"
	"github.com/antojo-app/backend/pkg/pagination"
)

type restaurantResponse struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	Address         string            `json:"address"`
	Phone           *string           `json:"phone,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	Categories      []string          `json:"categories"`
	DeliveryFee     string            `json:"deliveryFee"`
	DeliveryTimeMin int               `json:"deliveryTimeMin"`
	MinimumOrder    string            `json:"minimumOrder"`
	Rating          float64           `json:"rating"`
	IsActive        bool              `json:"isActive"`
	Products        []productResponse `json:"products,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type productResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Price        string    `json:"price"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
}

type orderResponse struct {
	ID                   uuid.UUID               `json:"id"`
	UserID               uuid.UUID               `json:"userId"`
	RestaurantID         uuid.UUID               `json:"restaurantId"`
	RestaurantName       string                  `json:"restaurantName,omitempty"`
	Subtotal             string                  `json:"subtotal"`
	DeliveryFee          string                  `json:"deliveryFee"`
	Total                string                  `json:"total"`
	DeliveryAddress      string                  `json:"deliveryAddress"`
	DeliveryInstructions *string                 `json:"deliveryInstructions,omitempty"`
	PaymentMethod        enums.PaymentMethod     `json:"paymentMethod"`
	Status               enums.OrderStatus       `json:"status"`
	StatusLabel          string                  `json:"statusLabel"`
	Items                []orderItemResponse     `json:"items,omitempty"`
	StatusHistory        []statusChangeResponse  `json:"statusHistory,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

type orderItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ProductName string     `json:"productName,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   string     `json:"unitPrice"`
	Subtotal    string     `json:"subtotal"`
}

type statusChangeResponse struct {
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

type userResponse struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FullName  string         `json:"fullName"`
	Phone     *string        `json:"phone,omitempty"`
	Role      enums.UserRole `json:"role"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
}

func newRestaurantResponse(row *models.Restaurant, includeProducts bool) restaurantResponse {
	resp := restaurantResponse{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Address:         row.Address,
		Phone:           row.Phone,
		ImageURL:        row.ImageURL,
		Categories:      row.Categories,
		DeliveryFee:     row.DeliveryFee.StringFixed(2),
		DeliveryTimeMin: row.DeliveryTimeMin,
		MinimumOrder:    row.MinimumOrder.StringFixed(2),
		Rating:          row.Rating,
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt,
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if includeProducts {
		resp.Products = make([]productResponse, 0, len(row.Products))
		for i := range row.Products {
			resp.Products = append(resp.Products, newProductResponse(&row.Products[i]))
		}
	}
	return resp
}

func newProductResponse(row *models.Product) productResponse {
	return productResponse{
		ID:           row.ID,
		RestaurantID: row.RestaurantID,
		Name:         row.Name,
		Description:  row.Description,
		Price:        row.Price.StringFixed(2),
		Category:     row.Category,
		ImageURL:     row.ImageURL,
		IsAvailable:  row.IsAvailable,
		CreatedAt:    row.CreatedAt,
	}
}

func newOrderResponse(row *models.Order) orderResponse {
	resp := orderResponse{
		ID:                   row.ID,
		UserID:               row.UserID,
		RestaurantID:         row.RestaurantID,
		Subtotal:             row.Subtotal.StringFixed(2),
		DeliveryFee:          row.DeliveryFee.StringFixed(2),
		Total:                row.Total.StringFixed(2),
		DeliveryAddress:      row.DeliveryAddress,
		DeliveryInstructions: row.DeliveryInstructions,
		PaymentMethod:        row.PaymentMethod,
		Status:               row.Status,
		StatusLabel:          row.Status.Display().Label,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
	if row.Restaurant != nil {
		resp.RestaurantName = row.Restaurant.Name
	}
	for i := range row.Items {
		item := &row.Items[i]
		itemResp := orderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal.StringFixed(2),
		}
		if item.Product != nil {
			itemResp.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, itemResp)
	}
	for _, change := range row.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, statusChangeResponse{
			Status:    change.Status,
			CreatedAt: change.CreatedAt,
		})
	}
	return resp
}

func newOrderResponses(rows []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(rows))
	for i := range rows {
		out = append(out, newOrderResponse(&rows[i]))
	}
	return out
}

func newUserResponse(row *models.User) userResponse {
	return userResponse{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Phone:     row.Phone,
		Role:      row.Role,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}, nil
}
