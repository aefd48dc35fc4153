package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/utils"
)

// Seed populates an empty database with an admin account and a starter
// catalog. It is a no-op when users already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utils.InfoLogger.Println("seed skipped, database already populated")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@enursery.com",
		PasswordHash: string(hash),
		FullName:     "Admin User",
		Phone:        "9876543210",
		Address:      "123 Admin Street",
		City:         "Bangalore",
		State:        "Karnataka",
		Pincode:      "560001",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	plants := []models.Plant{
		{
			Name: "Tulsi (Holy Basil)", Category: "Medicinal", Price: 150.00, Stock: 45,
			Description:      "Sacred plant known for its medicinal properties. Excellent for respiratory health, immunity booster, and stress relief.",
			Sunlight:         "Full Sun (6-8 hours)",
			Water:            "Moderate - Keep soil moist",
			CareInstructions: "Tulsi thrives in warm climate. Water regularly but avoid waterlogging. Pinch off flowers to promote leaf growth.",
		},
		{
			Name: "Aloe Vera", Category: "Medicinal", Price: 120.00, Stock: 60,
			Description:      "Succulent plant with gel-filled leaves. Great for skin care, burns, digestion, and air purification.",
			Sunlight:         "Bright Indirect Light",
			Water:            "Low - Water once a week",
			CareInstructions: "Aloe vera prefers well-draining soil. Water deeply but infrequently. Perfect for beginners.",
		},
		{
			Name: "Neem Tree", Category: "Medicinal", Price: 250.00, Stock: 30,
			Description:      "Powerful medicinal tree. Known for antibacterial, antifungal properties. Every part is useful.",
			Sunlight:         "Full Sun",
			Water:            "Moderate",
			CareInstructions: "Neem is hardy and drought-resistant once established. Requires minimal care.",
		},
		{
			Name: "Mint (Pudina)", Category: "Medicinal", Price: 80.00, Stock: 3,
			Description:      "Aromatic herb perfect for teas, chutneys, and medicinal use. Helps in digestion and fresh breath.",
			Sunlight:         "Partial Shade to Full Sun",
			Water:            "High - Keep soil consistently moist",
			CareInstructions: "Mint grows vigorously and spreads quickly. Best grown in containers to control spread.",
		},
		{
			Name: "Ashwagandha", Category: "Medicinal", Price: 180.00, Stock: 25,
			Description:      "Ancient medicinal herb known as Indian ginseng. Helps reduce stress, anxiety, and boosts immunity.",
			Sunlight:         "Full Sun",
			Water:            "Low to Moderate",
			CareInstructions: "Ashwagandha prefers dry climate and well-drained soil. Roots are harvested after 6-7 months.",
		},
		{
			Name: "Rose Plant (Desi Gulab)", Category: "Flower", Price: 200.00, Stock: 40,
			Description:      "Classic fragrant rose plant. Produces beautiful blooms. Perfect for Indian gardens and balconies.",
			Sunlight:         "Full Sun (6+ hours)",
			Water:            "Moderate - Water daily in summer",
			CareInstructions: "Roses need regular feeding and pruning. Remove dead flowers to encourage new blooms.",
		},
		{
			Name: "Marigold (Genda)", Category: "Flower", Price: 60.00, Stock: 80,
			Description:      "Vibrant orange and yellow flowers. Auspicious plant for Indian festivals. Easy to grow and maintain.",
			Sunlight:         "Full Sun",
			Water:            "Moderate",
			CareInstructions: "Marigold is very easy to grow. Deadhead regularly for continuous flowering.",
		},
		{
			Name: "Jasmine (Mogra)", Category: "Flower", Price: 175.00, Stock: 35,
			Description:      "Highly fragrant white flowers. Used in worship and perfumes. Night-blooming variety available.",
			Sunlight:         "Full Sun to Partial Shade",
			Water:            "Moderate to High",
			CareInstructions: "Jasmine needs support for climbing. Water regularly during flowering season.",
		},
		{
			Name: "Hibiscus (Gudhal)", Category: "Flower", Price: 140.00, Stock: 4,
			Description:      "Large showy flowers in various colors. Used in worship. Attracts butterflies and hummingbirds.",
			Sunlight:         "Full Sun",
			Water:            "Moderate to High",
			CareInstructions: "Hibiscus needs regular watering and feeding. Prune to encourage bushiness.",
		},
		{
			Name: "Tomato Plant", Category: "Vegetable", Price: 90.00, Stock: 50,
			Description:      "Fresh homegrown tomatoes. Hybrid variety suitable for Indian climate. High yielding.",
			Sunlight:         "Full Sun (6-8 hours)",
			Water:            "Regular - Keep soil evenly moist",
			CareInstructions: "Provide support with stakes. Feed with organic fertilizer. Pinch off suckers for better yield.",
		},
		{
			Name: "Chilli Plant (Mirchi)", Category: "Vegetable", Price: 70.00, Stock: 65,
			Description:      "Spicy green chillies. Compact plant suitable for pots. Produces chillies throughout the year.",
			Sunlight:         "Full Sun",
			Water:            "Moderate",
			CareInstructions: "Chilli plants love heat. Water regularly but avoid overwatering.",
		},
		{
			Name: "Coriander (Dhania)", Category: "Vegetable", Price: 50.00, Stock: 2,
			Description:      "Fresh coriander leaves for garnishing. Fast-growing herb. Can be grown year-round.",
			Sunlight:         "Partial Shade to Full Sun",
			Water:            "Keep soil moist",
			CareInstructions: "Coriander prefers cool weather. Sow seeds every 2-3 weeks for continuous supply.",
		},
		{
			Name: "Lemon Plant (Nimbu)", Category: "Fruit", Price: 350.00, Stock: 25,
			Description:      "Dwarf lemon variety perfect for pots. Produces juicy lemons. Fragrant flowers.",
			Sunlight:         "Full Sun (8+ hours)",
			Water:            "Regular, keep soil moist",
			CareInstructions: "Lemon plants need regular feeding. Protect from extreme cold. Produces fruit in 2-3 years.",
		},
		{
			Name: "Pomegranate (Anar)", Category: "Fruit", Price: 400.00, Stock: 18,
			Description:      "Ruby-red fruit loaded with antioxidants. Ornamental flowers. Can be grown in large pots.",
			Sunlight:         "Full Sun",
			Water:            "Moderate - drought tolerant",
			CareInstructions: "Pomegranate is hardy and low-maintenance. Bears fruit in 2-3 years.",
		},
		{
			Name: "Papaya Plant", Category: "Fruit", Price: 150.00, Stock: 5,
			Description:      "Fast-growing fruit plant. Produces nutritious fruits in 8-10 months. Great for small gardens.",
			Sunlight:         "Full Sun",
			Water:            "Regular, well-drained soil",
			CareInstructions: "Papaya grows very fast. Needs support when fruiting. Sensitive to frost and cold.",
		},
	}
	if err := db.Create(&plants).Error; err != nil {
		return err
	}

	ingredients := []models.Ingredient{
		{
			Name: "Organic Vermicompost (5kg)", Type: "Fertilizer", Price: 250.00, Stock: 100,
			Description:       "Premium quality vermicompost made from earthworm castings. Rich in nutrients and beneficial microorganisms.",
			UsageInstructions: "Mix 1 part vermicompost with 3 parts soil. Apply as top dressing every 30 days.",
		},
		{
			Name: "NPK Fertilizer 19:19:19 (1kg)", Type: "Fertilizer", Price: 180.00, Stock: 75,
			Description:       "Balanced NPK fertilizer for healthy plant growth. Water-soluble for quick absorption.",
			UsageInstructions: "Mix 5-10 grams per liter of water. Apply every 15 days during growing season.",
		},
		{
			Name: "Neem Oil Organic Pesticide (500ml)", Type: "Fertilizer", Price: 320.00, Stock: 55,
			Description:       "Natural pesticide and fungicide. Safe for organic gardening. Controls pests and diseases.",
			UsageInstructions: "Mix 5ml neem oil per liter water. Spray on plants in evening. Apply weekly for pest control.",
		},
		{
			Name: "Bone Meal Fertilizer (2kg)", Type: "Fertilizer", Price: 200.00, Stock: 4,
			Description:       "Rich in phosphorus for root development and flowering. Slow-release organic fertilizer.",
			UsageInstructions: "Mix 100g per medium-sized pot. Apply during planting and flowering season.",
		},
		{
			Name: "Cocopeat Block (5kg)", Type: "Soil", Price: 150.00, Stock: 90,
			Description:       "Compressed coconut coir. Excellent soil conditioner. Retains moisture and improves drainage.",
			UsageInstructions: "Soak in water to expand. Mix with soil in 1:1 ratio. Ideal for seed starting and potting mix.",
		},
		{
			Name: "Garden Soil Mix (10kg)", Type: "Soil", Price: 120.00, Stock: 110,
			Description:       "Ready-to-use potting mix. Blend of soil, compost, and organic matter. pH balanced.",
			UsageInstructions: "Use directly for potting plants. Suitable for most indoor and outdoor plants.",
		},
		{
			Name: "Ceramic Pot with Drainage (10 inch)", Type: "Pot", Price: 350.00, Stock: 35,
			Description:       "Beautiful ceramic planter with drainage hole. Durable and decorative.",
			UsageInstructions: "Place broken pieces at bottom for drainage. Fill with potting mix.",
		},
		{
			Name: "Plastic Grow Bag Set (5 pieces)", Type: "Pot", Price: 150.00, Stock: 2,
			Description:       "UV-stabilized grow bags. Breathable fabric pots. Set of 5 bags (12 inch size).",
			UsageInstructions: "Excellent drainage and air pruning. Reusable and easy to store.",
		},
		{
			Name: "Terracotta Pot (8 inch)", Type: "Pot", Price: 120.00, Stock: 60,
			Description:       "Traditional clay pot. Porous and allows roots to breathe. Natural earthy look.",
			UsageInstructions: "Soak in water before first use. Water plants more frequently.",
		},
		{
			Name: "Garden Tool Set (5 pieces)", Type: "Tools", Price: 450.00, Stock: 30,
			Description:       "Essential gardening tools set. Includes trowel, fork, pruner, rake, and cultivator.",
			UsageInstructions: "Clean tools after use. Store in dry place. Sharpen pruner regularly for clean cuts.",
		},
		{
			Name: "Gardening Gloves (1 Pair)", Type: "Tools", Price: 150.00, Stock: 3,
			Description:       "Heavy-duty gardening gloves. Protects hands from thorns and dirt. Breathable and comfortable.",
			UsageInstructions: "Wear while handling plants and soil. Wash with soap and dry after use.",
		},
		{
			Name: "Tomato Seeds (Hybrid)", Type: "Seeds", Price: 60.00, Stock: 150,
			Description:       "High-yielding tomato seeds. Disease-resistant variety. Suitable for Indian climate.",
			UsageInstructions: "Sow in seedling tray. Transplant after 3-4 weeks. Germination in 7-10 days.",
		},
		{
			Name: "Marigold Seeds Mix", Type: "Seeds", Price: 40.00, Stock: 180,
			Description:       "Colorful marigold flower seeds. Mix of orange and yellow varieties. Easy to grow.",
			UsageInstructions: "Sow directly in soil. Water lightly. Germination in 5-7 days. Flowers appear in 45-50 days.",
		},
	}
	if err := db.Create(&ingredients).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("seeded %d plants, %d ingredients and an admin account", len(plants), len(ingredients))
	return nil
}
