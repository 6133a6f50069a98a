package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/freeenergie/parrainage/internal/catalog/domain"
	notificationdomain "github.com/freeenergie/parrainage/internal/notification/domain"
	partnerdomain "github.com/freeenergie/parrainage/internal/partner/domain"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultSupervisorName  = "Superviseur Free Energie"
	defaultSupervisorEmail = "superviseur@free-energie.app"
	defaultSponsorName     = "Marc Dupont"
	defaultSponsorEmail    = "marc.dupont@free-energie.app"
)

// AutoMigrate creates the schema on dialects that do not take the SQL
// migration path (sqlite in tests, mysql).
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	return db.AutoMigrate(
		&sponsordomain.Sponsor{},
		&referraldomain.Referral{},
		&catalogdomain.CatalogItem{},
		&partnerdomain.Partner{},
		&notificationdomain.Notification{},
	)
}

// EnsureDefaults seeds the supervisor account, a demo sponsor, the initial
// catalog, the launch partners and the welcome notifications. Idempotent:
// existing rows are left alone.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sponsorID, err := ensureUsers(ctx, tx, node)
		if err != nil {
			return err
		}
		if err := ensureCatalog(ctx, tx, node); err != nil {
			return err
		}
		if err := ensurePartners(ctx, tx, node, sponsorID); err != nil {
			return err
		}
		return ensureNotifications(ctx, tx, node)
	})
}

func ensureUsers(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (snowflake.ID, error) {
	now := time.Now().UTC()

	var supervisor sponsordomain.Sponsor
	err := tx.WithContext(ctx).
		Where("role = ?", sponsordomain.RoleSupervisor).
		Take(&supervisor).Error
	if err == gorm.ErrRecordNotFound {
		supervisor = sponsordomain.Sponsor{
			ID:        node.Generate(),
			Name:      defaultSupervisorName,
			Email:     defaultSupervisorEmail,
			Role:      sponsordomain.RoleSupervisor,
			Metadata:  datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = tx.WithContext(ctx).Create(&supervisor).Error
	}
	if err != nil {
		return 0, err
	}

	var sponsor sponsordomain.Sponsor
	err = tx.WithContext(ctx).
		Where("role = ?", sponsordomain.RoleSponsor).
		Take(&sponsor).Error
	if err == gorm.ErrRecordNotFound {
		sponsor = sponsordomain.Sponsor{
			ID:        node.Generate(),
			Name:      defaultSponsorName,
			Email:     defaultSponsorEmail,
			Role:      sponsordomain.RoleSponsor,
			Metadata:  datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = tx.WithContext(ctx).Create(&sponsor).Error
	}
	if err != nil {
		return 0, err
	}
	return sponsor.ID, nil
}

type catalogSeed struct {
	title       string
	description string
	tokenCost   int64
	image       string
	category    string
}

var initialCatalog = []catalogSeed{
	{
		title:       "Chèque Cadeau 150€",
		description: "Carte cadeau multi-enseignes valable partout, pour vous faire plaisir selon vos envies.",
		tokenCost:   1,
		image:       "https://images.unsplash.com/photo-1549465220-1a8b9238cd48?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryGiftCard,
	},
	{
		title:       "Entretien Annuel Offert",
		description: "Vérification complète de votre PAC ou installation solaire par nos techniciens.",
		tokenCost:   1,
		image:       "https://images.unsplash.com/photo-1581094794329-c8112a89af12?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryMaintenance,
	},
	{
		title:       "Cache Climatisation Alu",
		description: "Design épuré pour protéger et masquer votre unité extérieure.",
		tokenCost:   2,
		image:       "https://images.unsplash.com/photo-1621905251189-08b45d6a269e?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryAccessory,
	},
	{
		title:       "1 Panneau Solaire Offert",
		description: "Extension de votre installation existante avec un panneau supplémentaire (pose incluse).",
		tokenCost:   3,
		image:       "https://images.unsplash.com/photo-1509391366360-2e959784a276?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryEquipment,
	},
	{
		title:       "Borne de Recharge 7kW",
		description: "Installation d'une borne de recharge intelligente pour votre véhicule.",
		tokenCost:   5,
		image:       "https://images.unsplash.com/photo-1593941707882-a5bba14938c7?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryEquipment,
	},
	{
		title:       "Clim Celi (Pièce 30m²)",
		description: "Unité intérieure Celi offerte pour climatiser et chauffer une pièce de 30m².",
		tokenCost:   6,
		image:       "https://images.unsplash.com/photo-1617759530920-55e55418b57b?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryEquipment,
	},
	{
		title:       "2 Panneaux Solaires Offerts",
		description: "Boostez votre autoconsommation avec deux panneaux supplémentaires offerts.",
		tokenCost:   6,
		image:       "https://images.unsplash.com/photo-1613665813446-82a78c468a1d?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryEquipment,
	},
	{
		title:       "Week-end Luxe pour 2",
		description: "Évasion gastronomique et détente d'une valeur de 1000€ dans un hôtel étoilé.",
		tokenCost:   7,
		image:       "https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&q=80&w=400",
		category:    catalogdomain.CategoryLeisure,
	},
}

func ensureCatalog(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.CatalogItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, entry := range initialCatalog {
		item := catalogdomain.CatalogItem{
			ID:          node.Generate(),
			Code:        slug.Make(entry.title),
			Title:       entry.title,
			Description: entry.description,
			TokenCost:   entry.tokenCost,
			Image:       entry.image,
			Category:    entry.category,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensurePartners(ctx context.Context, tx *gorm.DB, node *snowflake.Node, sponsorID snowflake.ID) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&partnerdomain.Partner{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	partners := []partnerdomain.Partner{
		{
			ID:               node.Generate(),
			CompanyName:      "Parfumerie des Alpes",
			Category:         "Beauté",
			OfferDescription: "-20% sur tous les coffrets cadeaux pour les membres Free Energie.",
			Department:       partnerdomain.DepartmentHauteSavoie,
			Image:            "https://images.unsplash.com/photo-1616401776146-24959a444d32?auto=format&fit=crop&q=80&w=400",
			SponsorID:        sponsorID,
			SponsorName:      "Sophie Bernard",
			Status:           partnerdomain.StatusValidated,
			CreatedAt:        now,
			UpdatedAt:        now,
		},
		{
			ID:               node.Generate(),
			CompanyName:      "Saveurs de Savoie",
			Category:         "Gastronomie",
			OfferDescription: "Un saucisson offert pour tout achat de fromage > 30€.",
			Department:       partnerdomain.DepartmentSavoie,
			Image:            "https://images.unsplash.com/photo-1624466988891-b127598c19a9?auto=format&fit=crop&q=80&w=400",
			SponsorID:        sponsorID,
			SponsorName:      "Thomas Petit",
			Status:           partnerdomain.StatusValidated,
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}
	for i := range partners {
		if err := tx.WithContext(ctx).Create(&partners[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureNotifications(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&notificationdomain.Notification{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	notifications := []notificationdomain.Notification{
		{
			ID:        node.Generate(),
			Title:     "Lancement 2026 🚀",
			Message:   "Bienvenue dans la nouvelle application Free Energie ! Doublez vos jetons ce mois-ci.",
			Type:      notificationdomain.TypeBoost,
			Date:      now.Truncate(24 * time.Hour),
			CreatedAt: now,
		},
		{
			ID:        node.Generate(),
			Title:     "Nouveau Partenaire",
			Message:   "Découvrez la Parfumerie des Alpes dans la section Communauté.",
			Type:      notificationdomain.TypeInfo,
			Date:      now.Truncate(24 * time.Hour),
			CreatedAt: now,
		},
	}
	for i := range notifications {
		if err := tx.WithContext(ctx).Create(&notifications[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
