package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateProductMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/products" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("backend could not parse multipart body: %v", err)
		}

		for field, want := range map[string]string{
			"productName": "Rose bouquet",
			"description": "A dozen red roses",
			"stock":       "12",
			"price":       "49.9",
			"discount":    "10",
			"categoryId":  "4",
		} {
			if got := r.FormValue(field); got != want {
				t.Fatalf("field %s: expected %q, got %q", field, want, got)
			}
		}

		files := r.MultipartForm.File["images"]
		if len(files) != 3 {
			t.Fatalf("expected 3 image parts, got %d", len(files))
		}
		f, err := files[0].Open()
		if err != nil {
			t.Fatalf("failed to open image part: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "png-bytes-0" {
			t.Fatalf("unexpected image payload %q", data)
		}

		// a create never stages existing-image IDs
		if _, ok := r.MultipartForm.Value["retainedImageIds"]; ok {
			t.Fatalf("create must not send retainedImageIds")
		}
		if _, ok := r.MultipartForm.Value["deletedImageIds"]; ok {
			t.Fatalf("create must not send deletedImageIds")
		}

		io.WriteString(w, `{"data":{"productId":77,"productName":"Rose bouquet"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, testLogger())
	form := ProductForm{
		ProductName: "Rose bouquet",
		Description: "A dozen red roses",
		Stock:       12,
		Price:       49.9,
		Discount:    10,
		CategoryID:  4,
		Images: []ImageFile{
			{Filename: "a.png", Data: []byte("png-bytes-0")},
			{Filename: "b.png", Data: []byte("png-bytes-1")},
			{Filename: "c.png", Data: []byte("png-bytes-2")},
		},
	}
	p, err := client.CreateProduct(context.Background(), mintToken(t, "a@b.c"), form)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if p.ProductID != 77 {
		t.Fatalf("expected created product ID 77, got %d", p.ProductID)
	}
}

func TestUpdateProductStagesImageIDSets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/products/5" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("backend could not parse multipart body: %v", err)
		}
		if got := r.FormValue("retainedImageIds"); got != "[1,2]" {
			t.Fatalf("expected retainedImageIds [1,2], got %q", got)
		}
		if got := r.FormValue("deletedImageIds"); got != "[3]" {
			t.Fatalf("expected deletedImageIds [3], got %q", got)
		}
		if len(r.MultipartForm.File["images"]) != 1 {
			t.Fatalf("expected 1 new image part, got %d", len(r.MultipartForm.File["images"]))
		}
		io.WriteString(w, `{"data":{"productId":5}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, testLogger())
	form := ProductForm{
		ProductName:      "Tulip mix",
		Stock:            3,
		Price:            19.5,
		CategoryID:       2,
		Images:           []ImageFile{{Filename: "new.png", Data: []byte("new-bytes")}},
		RetainedImageIDs: []int{1, 2},
		DeletedImageIDs:  []int{3},
	}
	if _, err := client.UpdateProduct(context.Background(), mintToken(t, "a@b.c"), 5, form); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
}

func TestUpdateProductOmitsEmptyIDSets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("backend could not parse multipart body: %v", err)
		}
		if _, ok := r.MultipartForm.Value["retainedImageIds"]; ok {
			t.Fatalf("empty retained set must be omitted")
		}
		if _, ok := r.MultipartForm.Value["deletedImageIds"]; ok {
			t.Fatalf("empty deleted set must be omitted")
		}
		io.WriteString(w, `{"data":{"productId":5}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, testLogger())
	if _, err := client.UpdateProduct(context.Background(), mintToken(t, "a@b.c"), 5, ProductForm{ProductName: "Tulip mix"}); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
}
