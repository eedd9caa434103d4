package main

import (
	"context"
	"time"

	"handcrafted_gifts/internal/adapter/persistence/repository"
	"handcrafted_gifts/internal/config"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/infrastructure/database"
	"handcrafted_gifts/internal/logging"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var catalog = []entities.Product{
	{
		Name:         "Custom Name Embroidery Hoop",
		Category:     entities.CategoryEmbroidery,
		Description:  "Hand embroidered hoop with a name or short message of your choice.",
		BasePrice:    decimal.NewFromInt(449),
		Customizable: true,
		Options: entities.ProductOptions{
			Colors:    []string{"Pink", "Blue", "Yellow", "White"},
			Sizes:     []string{"6", "8", "10"},
			SizeUnit:  entities.SizeUnitInch,
			Materials: []string{"Cotton", "Linen"},
		},
		InStock:  true,
		Featured: true,
	},
	{
		Name:         "Monogram Handkerchief",
		Category:     entities.CategoryHanky,
		Description:  "Soft cotton handkerchief with a hand stitched initial.",
		BasePrice:    decimal.NewFromInt(199),
		Customizable: true,
		Options: entities.ProductOptions{
			Colors:    []string{"White", "Ivory"},
			Materials: []string{"Cotton"},
		},
		InStock:  true,
		Featured: true,
	},
	{
		Name:        "Floral Hair Scrunchie Set",
		Category:    entities.CategoryAccessories,
		Description: "Set of three scrunchies with embroidered flowers.",
		BasePrice:   decimal.NewFromInt(299),
		InStock:     true,
	},
}

// seed adds a starter catalog when the products table is empty.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[seed] invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[seed] aws config")
	}
	repo := repository.NewProductDynamoRepository(database.ConnectDynamoDB(awsCfg, cfg.DynamoDBEndpoint), cfg.ProductsTable)
	products := usecase.NewProductUseCase(repo, nil)

	existing, err := products.List(ctx, interfaces.ProductFilter{IncludeOutOfStock: true})
	if err != nil {
		log.Fatal().Err(err).Msg("[seed] list products")
	}
	if len(existing) > 0 {
		log.Info().Int("products", len(existing)).Msg("[seed] catalog not empty, nothing to do")
		return
	}

	for _, p := range catalog {
		created, err := products.Create(ctx, p)
		if err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("[seed] create product")
		}
		log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("[seed] product created")
	}
}
