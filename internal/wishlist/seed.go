package wishlist

// Seed returns the example sets every session starts with.
func Seed() Collection {
	return Collection{
		{Key: "75192", Record: Record{
			Name:        "Millennium Falcon",
			Price:       "849.99",
			AgeGroup:    "16+",
			Pieces:      "7541",
			Description: "Make room to display the most famous starship in the galaxy!",
		}},
		{Key: "75370", Record: Record{
			Name:        "Stormtrooper Mech",
			Price:       "15.99",
			AgeGroup:    "6+",
			Pieces:      "138",
			Description: "The posable mech suit has an opening cockpit for the Stormtrooper LEGO minifigure!",
		}},
		{Key: "75379", Record: Record{
			Name:        "R2-D2",
			Price:       "99.99",
			AgeGroup:    "10+",
			Pieces:      "1050",
			Description: "This brick-built droid is ready to explore the galaxy!",
		}},
	}
}
