package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

// ImageFile is one newly attached product image, read from the staff's
// multipart upload and forwarded to the backend as-is.
type ImageFile struct {
	Filename string
	Data     []byte
}

// ProductForm carries the editable product fields plus the three staged
// image sets: new uploads, retained existing images and existing images
// marked for deletion. Retained/deleted IDs only apply to updates; a create
// submits neither field.
type ProductForm struct {
	ProductName      string
	Description      string
	Stock            int
	Price            float64
	Discount         float64
	CategoryID       int
	Images           []ImageFile
	RetainedImageIDs []int
	DeletedImageIDs  []int
}

// ListProducts fetches one page of the catalog. pageNo is zero-based.
func (c *Client) ListProducts(ctx context.Context, pageNo, pageSize int) (ProductPage, error) {
	var page ProductPage
	err := c.doJSON(ctx, http.MethodGet, "/products", "", pageQuery(pageNo, pageSize), nil, &page)
	return page, err
}

func (c *Client) GetProduct(ctx context.Context, productID int) (Product, error) {
	var p Product
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", productID), "", nil, nil, &p)
	return p, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, form ProductForm) (Product, error) {
	var p Product
	err := c.doMultipart(ctx, http.MethodPost, "/admin/products", token, form, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, token string, productID int, form ProductForm) (Product, error) {
	var p Product
	err := c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d", productID), token, form, &p)
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, token string, productID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d", productID), token, nil, nil, nil)
}

// doMultipart encodes the product form as multipart/form-data, switching
// away from the client's JSON default because the payload carries binaries.
func (c *Client) doMultipart(ctx context.Context, method, path, token string, form ProductForm, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"productName": form.ProductName,
		"description": form.Description,
		"stock":       strconv.Itoa(form.Stock),
		"price":       strconv.FormatFloat(form.Price, 'f', -1, 64),
		"discount":    strconv.FormatFloat(form.Discount, 'f', -1, 64),
		"categoryId":  strconv.Itoa(form.CategoryID),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return errors.Wrapf(err, "write form field %s", name)
		}
	}

	for _, img := range form.Images {
		part, err := w.CreateFormFile("images", img.Filename)
		if err != nil {
			return errors.Wrapf(err, "attach image %s", img.Filename)
		}
		if _, err := part.Write(img.Data); err != nil {
			return errors.Wrapf(err, "write image %s", img.Filename)
		}
	}

	// IDs of pre-existing images ride as JSON-array string fields, and each
	// field is omitted entirely when its set is empty.
	if err := writeIDField(w, "retainedImageIds", form.RetainedImageIDs); err != nil {
		return err
	}
	if err := writeIDField(w, "deletedImageIds", form.DeletedImageIDs); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return errors.Wrap(err, "finalize multipart body")
	}

	req, err := c.newRequest(ctx, method, path, token, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

func writeIDField(w *multipart.Writer, name string, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}
	if err := w.WriteField(name, string(b)); err != nil {
		return errors.Wrapf(err, "write form field %s", name)
	}
	return nil
}
