package product

import (
	"strconv"
	"strings"
)

// productInput carries the raw multipart form values; price and stock stay
// strings until validation has checked them.
type productInput struct {
	Name        string
	Description string
	Category    string
	Tags        string
	Price       string
	Stock       string
	Email       string
}

// validate checks every rule and reports all violations, not just the first.
func (in productInput) validate() (price float64, stock int, errs []string) {
	if in.Name == "" {
		errs = append(errs, "Please enter the product name!")
	}
	if in.Description == "" {
		errs = append(errs, "Please enter the product description!")
	}
	if in.Category == "" {
		errs = append(errs, "Please enter the product category!")
	}
	price, perr := strconv.ParseFloat(in.Price, 64)
	if in.Price == "" || perr != nil || price <= 0 {
		errs = append(errs, "Please enter the product's valid price!")
	}
	stock, serr := strconv.Atoi(in.Stock)
	if in.Stock == "" || serr != nil || stock <= 0 {
		errs = append(errs, "Please enter the product stock!")
	}
	if in.Email == "" {
		errs = append(errs, "Please enter a valid email address!")
	}
	return price, stock, errs
}

// tagList splits the comma separated tags form field.
func (in productInput) tagList() []string {
	if strings.TrimSpace(in.Tags) == "" {
		return nil
	}
	parts := strings.Split(in.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
