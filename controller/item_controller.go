package controller

import (
	"net/http"

	"marketplace-backend/usecase"
)

type ItemController struct {
	base
	usecase *usecase.ItemUsecase
}

func NewItemController(b base, uc *usecase.ItemUsecase) *ItemController {
	return &ItemController{base: b, usecase: uc}
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Price       int    `json:"price" validate:"required,gte=1,lte=10000000"`
}

func (c *ItemController) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !c.decode(w, r, &req) {
		return
	}
	item, err := c.usecase.CreateItem(r.Context(), callerFromContext(r.Context()), usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Item listed", item)
}

func (c *ItemController) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r, "id", usecase.ErrItemNotFound)
	if !ok {
		return
	}
	item, err := c.usecase.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}
