package services_test

import (
	"context"
	"testing"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/application/services"
	"github.com/ceras-workshop/storefront-gateway/internal/application/services/testhelpers"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	testDB      *testhelpers.TestDatabase
	productRepo *postgres.ProductRepository
	service     *services.CatalogService
}

func TestCatalogServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (suite *CatalogServiceTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.productRepo = postgres.NewProductRepository(suite.testDB.DB)
}

func (suite *CatalogServiceTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
	suite.service = services.NewCatalogService(suite.productRepo)
}

func (suite *CatalogServiceTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *CatalogServiceTestSuite) Test_ListProducts_FiltersByCategory() {
	ctx := context.Background()
	t := suite.T()

	vases := testhelpers.InsertCategory(t, ctx, suite.testDB.DB, "Vases", "vases")
	bowls := testhelpers.InsertCategory(t, ctx, suite.testDB.DB, "Bowls", "bowls")

	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Name: "Terracotta Vase", Slug: "terracotta-vase", Active: true, CategoryID: &vases.ID,
	})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Name: "Stoneware Bowl", Slug: "stoneware-bowl", Active: true, CategoryID: &bowls.ID,
	})

	products, err := suite.service.ListProducts(ctx, domain.ProductQuery{CategorySlug: "vases"})

	suite.Require().NoError(err)
	suite.Require().Len(products, 1)
	suite.Equal("terracotta-vase", products[0].Slug)
	suite.Require().NotNil(products[0].Category)
	suite.Equal("Vases", products[0].Category.Name)
}

func (suite *CatalogServiceTestSuite) Test_ListProducts_AllCategoryPassesThrough() {
	ctx := context.Background()
	t := suite.T()

	vases := testhelpers.InsertCategory(t, ctx, suite.testDB.DB, "Vases", "vases")
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "terracotta-vase", Active: true, CategoryID: &vases.ID,
	})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "loose-mug", Active: true,
	})

	products, err := suite.service.ListProducts(ctx, domain.ProductQuery{CategorySlug: "all"})

	suite.Require().NoError(err)
	suite.Len(products, 2)
}

func (suite *CatalogServiceTestSuite) Test_ListProducts_ExcludesInactive() {
	ctx := context.Background()
	t := suite.T()

	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "live-vase", Active: true})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "retired-vase", Active: false})

	products, err := suite.service.ListProducts(ctx, domain.ProductQuery{})

	suite.Require().NoError(err)
	suite.Require().Len(products, 1)
	suite.Equal("live-vase", products[0].Slug)
}

func (suite *CatalogServiceTestSuite) Test_ListProducts_FeaturedFilter() {
	ctx := context.Background()
	t := suite.T()

	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "featured-vase", Active: true, Featured: true})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "plain-vase", Active: true})

	featured := true
	products, err := suite.service.ListProducts(ctx, domain.ProductQuery{Featured: &featured})

	suite.Require().NoError(err)
	suite.Require().Len(products, 1)
	suite.Equal("featured-vase", products[0].Slug)
}

func (suite *CatalogServiceTestSuite) Test_ListProducts_SearchMatchesMaterials() {
	ctx := context.Background()
	t := suite.T()

	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "walnut-board", Name: "Serving Board", Materials: "walnut wood", Active: true,
	})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "clay-vase", Name: "Clay Vase", Materials: "terracotta clay", Active: true,
	})

	products, err := suite.service.ListProducts(ctx, domain.ProductQuery{Search: "WALNUT"})

	suite.Require().NoError(err)
	suite.Require().Len(products, 1)
	suite.Equal("walnut-board", products[0].Slug)
}

func (suite *CatalogServiceTestSuite) Test_ListProducts_SortsByPrice() {
	ctx := context.Background()
	t := suite.T()

	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "pricey", Price: 120.00, Active: true})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "cheap", Price: 12.00, Active: true})
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{Slug: "middling", Price: 45.00, Active: true})

	products, err := suite.service.ListProducts(ctx, domain.ProductQuery{Sort: "price-low"})

	suite.Require().NoError(err)
	suite.Require().Len(products, 3)
	suite.Equal("cheap", products[0].Slug)
	suite.Equal("pricey", products[2].Slug)

	products, err = suite.service.ListProducts(ctx, domain.ProductQuery{Sort: "price-high"})
	suite.Require().NoError(err)
	suite.Equal("pricey", products[0].Slug)
}

func (suite *CatalogServiceTestSuite) Test_GetProductBySlug() {
	ctx := context.Background()
	t := suite.T()

	row := testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "terracotta-vase", Name: "Terracotta Vase", Active: true,
	})
	testhelpers.InsertProductImage(t, ctx, suite.testDB.DB, row.ID, "https://cdn.example.com/vase-side.jpg", 1, false)
	testhelpers.InsertProductImage(t, ctx, suite.testDB.DB, row.ID, "https://cdn.example.com/vase-front.jpg", 0, true)

	product, err := suite.service.GetProductBySlug(ctx, "terracotta-vase")

	suite.Require().NoError(err)
	suite.Equal("Terracotta Vase", product.Name)
	suite.Require().Len(product.Images, 2)
	suite.True(product.Images[0].IsPrimary, "primary image sorts first")
}

func (suite *CatalogServiceTestSuite) Test_GetProductBySlug_NotFound() {
	ctx := context.Background()

	_, err := suite.service.GetProductBySlug(ctx, "missing-slug")

	svcErr, ok := application.IsServiceError(err)
	suite.Require().True(ok)
	suite.Equal(application.ErrCodeNotFound, svcErr.Code)
	suite.Equal("Product not found", svcErr.Message)
}

func (suite *CatalogServiceTestSuite) Test_GetProductBySlug_SalePriceFallsBackToPrice() {
	ctx := context.Background()
	t := suite.T()

	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "no-sale-vase", Price: 45.00, Active: true,
	})
	sale := 38.00
	testhelpers.InsertProduct(t, ctx, suite.testDB.DB, testhelpers.ProductRow{
		Slug: "sale-bowl", Price: 28.50, SalePrice: &sale, Active: true,
	})

	product, err := suite.service.GetProductBySlug(ctx, "no-sale-vase")
	suite.Require().NoError(err)
	suite.Equal(45.00, product.SalePrice)

	product, err = suite.service.GetProductBySlug(ctx, "sale-bowl")
	suite.Require().NoError(err)
	suite.Equal(38.00, product.SalePrice)
}
