package products

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/flowerstore/admin-dashboard/internal/api"
)

// parseForm turns the submitted multipart modal form into the REST client's
// product payload. The form stages three image sets: newly attached files
// ("images"), every pre-existing image as a hidden existingImageId field,
// and the checked deleteImageId boxes. Retained is existing minus deleted.
// A create form carries no existing fields, so both ID sets stay empty and
// the client omits them from the payload.
func (h *Handler) parseForm(c *fiber.Ctx) (api.ProductForm, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return api.ProductForm{}, errors.Wrap(err, "parse product form")
	}

	value := func(name string) string {
		if vs := mf.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	stock, _ := strconv.Atoi(value("stock"))
	price, _ := strconv.ParseFloat(value("price"), 64)
	discount, _ := strconv.ParseFloat(value("discount"), 64)
	categoryID, _ := strconv.Atoi(value("categoryId"))

	form := api.ProductForm{
		ProductName: value("productName"),
		Description: value("description"),
		Stock:       stock,
		Price:       price,
		Discount:    discount,
		CategoryID:  categoryID,
	}

	for _, fh := range mf.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return api.ProductForm{}, errors.Wrapf(err, "open uploaded image %s", fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return api.ProductForm{}, errors.Wrapf(err, "read uploaded image %s", fh.Filename)
		}
		form.Images = append(form.Images, api.ImageFile{Filename: fh.Filename, Data: data})
	}

	existing := parseIDs(mf.Value["existingImageId"])
	deleted := parseIDs(mf.Value["deleteImageId"])
	deletedSet := make(map[int]bool, len(deleted))
	for _, id := range deleted {
		deletedSet[id] = true
	}
	for _, id := range existing {
		if deletedSet[id] {
			form.DeletedImageIDs = append(form.DeletedImageIDs, id)
		} else {
			form.RetainedImageIDs = append(form.RetainedImageIDs, id)
		}
	}
	return form, nil
}

func parseIDs(values []string) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		if id, err := strconv.Atoi(v); err == nil {
			out = append(out, id)
		}
	}
	return out
}
