package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	"github.com/shajghor/shajghor-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the catalog from an xlsx sheet and seeds the bootstrap admin
// account. Expected columns, one product per row:
//
//	A name, B category, C subcategory, D base_price, E description,
//	F brand, G variant_name, H variant_price, I variant_stock, J image_url
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminRepo := repository.NewAdminUserRepository(db.GetDB())
	authService := service.NewAuthService(adminRepo, cfg)
	if err := authService.EnsureBootstrapAdmin(); err != nil {
		log.Fatal("Failed to seed bootstrap admin:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))
	fmt.Print("Continue? (y/N): ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(answer)) != "y" {
		fmt.Println("Aborted")
		return
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	imported := 0
	for i := range products {
		if err := productRepo.SaveWithChildren(&products[i]); err != nil {
			fmt.Printf("Failed to import %q: %v\n", products[i].Name, err)
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d/%d products\n", imported, len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	for i, row := range rows {
		// Header row
		if i == 0 {
			continue
		}
		if len(row) < 9 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		category := model.ProductCategory(strings.TrimSpace(strings.ToLower(row[1])))
		subcategory := strings.TrimSpace(strings.ToLower(row[2]))
		if !model.ValidSubcategory(category, subcategory) {
			fmt.Printf("Skipping row %d: unknown category/subcategory %s/%s\n", i+1, category, subcategory)
			continue
		}

		basePrice := parsePrice(row[3])
		variantPrice := parsePrice(row[7])
		variantStock, _ := strconv.Atoi(strings.TrimSpace(row[8]))

		product := model.Product{
			Name:        strings.TrimSpace(row[0]),
			Category:    category,
			Subcategory: subcategory,
			BasePrice:   basePrice,
			Description: strings.TrimSpace(row[4]),
			Brand:       strings.TrimSpace(row[5]),
			Status:      model.ProductStatusActive,
			Variants: []model.ProductVariant{
				{
					VariantName: strings.TrimSpace(row[6]),
					Price:       variantPrice,
					Stock:       variantStock,
					IsDefault:   true,
				},
			},
		}

		if len(row) > 9 && strings.TrimSpace(row[9]) != "" {
			product.Images = []model.ProductImage{
				{
					ImageURL:     strings.TrimSpace(row[9]),
					IsPrimary:    true,
					DisplayOrder: 0,
				},
			}
		}

		products = append(products, product)
	}

	return products, nil
}

func parsePrice(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
