// internal/database/seed.go
package database

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/courtsideapp/courtside/internal/models"
)

// EnsureCourts seeds the court catalog when the collection is empty. Meant
// to be run fire-and-forget at startup; it must never block request serving.
func EnsureCourts(ctx context.Context, courts CourtStore, log *logrus.Logger) {
	count, err := courts.Count(ctx)
	if err != nil {
		log.WithError(err).Warn("court seed: count failed")
		return
	}
	if count > 0 {
		return
	}

	if err := courts.InsertMany(ctx, SeedCourts()); err != nil {
		log.WithError(err).Warn("court seed: insert failed")
		return
	}
	log.Info("initialized basketball court catalog")
}

// SeedCourts returns the built-in court catalog.
func SeedCourts() []models.Court {
	return []models.Court{
		{Name: "Discovery Green Court", Address: "1500 McKinney St, Houston, TX 77010", Latitude: 29.7514, Longitude: -95.3585, Hours: "6:00 am - 10:00 pm", PhoneNumber: "713-400-7336", Rating: 4.5, AveragePlayers: 18},
		{Name: "Levy Park Courts", Address: "3801 Eastside St, Houston, TX 77098", Latitude: 29.7368, Longitude: -95.3979, Hours: "7:00 am - 9:00 pm", PhoneNumber: "713-526-7867", Rating: 4.8, AveragePlayers: 22},
		{Name: "Memorial Park Courts", Address: "6501 Memorial Dr, Houston, TX 77007", Latitude: 29.7652, Longitude: -95.4294, Hours: "5:00 am - 11:00 pm", PhoneNumber: "713-863-8403", Rating: 4.6, AveragePlayers: 15},
		{Name: "Market Square Park Court", Address: "301 Milam St, Houston, TX 77002", Latitude: 29.7621, Longitude: -95.3617, Hours: "6:00 am - 10:00 pm", PhoneNumber: "713-650-3022", Rating: 4.3, AveragePlayers: 12},
		{Name: "Hermann Park Courts", Address: "6001 Fannin St, Houston, TX 77030", Latitude: 29.7177, Longitude: -95.3905, Hours: "6:00 am - 9:00 pm", PhoneNumber: "713-526-2183", Rating: 4.7, AveragePlayers: 20},
		{Name: "Buffalo Bayou Park Courts", Address: "3000 Allen Pkwy, Houston, TX 77019", Latitude: 29.7589, Longitude: -95.3897, Hours: "5:00 am - 10:00 pm", PhoneNumber: "713-752-0314", Rating: 4.4, AveragePlayers: 14},
		{Name: "Spotts Park Courts", Address: "401 Spotts Park Dr, Houston, TX 77009", Latitude: 29.7856, Longitude: -95.3498, Hours: "7:00 am - 9:00 pm", PhoneNumber: "713-845-1000", Rating: 4.2, AveragePlayers: 10},
		{Name: "MacGregor Park Courts", Address: "5225 Calhoun Rd, Houston, TX 77021", Latitude: 29.7112, Longitude: -95.3544, Hours: "6:00 am - 10:00 pm", PhoneNumber: "713-747-7234", Rating: 4.1, AveragePlayers: 8},
		{Name: "LA Fitness - Galleria", Address: "5155 West Alabama St, Houston, TX 77056", Latitude: 29.7355, Longitude: -95.4620, Hours: "5:00 am - 11:00 pm", PhoneNumber: "713-621-1100", Rating: 4.6, AveragePlayers: 24},
		{Name: "LA Fitness - Midtown", Address: "3232 Roseland St, Houston, TX 77004", Latitude: 29.7311, Longitude: -95.3686, Hours: "5:00 am - 11:00 pm", PhoneNumber: "713-520-1100", Rating: 4.5, AveragePlayers: 26},
		{Name: "LA Fitness - Memorial City", Address: "9603 Katy Fwy, Houston, TX 77024", Latitude: 29.7821, Longitude: -95.5381, Hours: "5:00 am - 11:00 pm", PhoneNumber: "713-461-1100", Rating: 4.7, AveragePlayers: 28},
		{Name: "LA Fitness - Westheimer", Address: "12655 Westheimer Rd, Houston, TX 77077", Latitude: 29.7357, Longitude: -95.6278, Hours: "5:00 am - 11:00 pm", PhoneNumber: "281-496-1100", Rating: 4.5, AveragePlayers: 22},
		{Name: "LA Fitness - Sugar Land", Address: "16730 Creek Bend Dr, Sugar Land, TX 77478", Latitude: 29.5959, Longitude: -95.6354, Hours: "5:00 am - 11:00 pm", PhoneNumber: "281-277-1100", Rating: 4.6, AveragePlayers: 20},
		{Name: "Life Time Athletic - Houston", Address: "5425 West Loop S, Bellaire, TX 77401", Latitude: 29.7048, Longitude: -95.4893, Hours: "4:00 am - 12:00 am", PhoneNumber: "713-667-9355", Rating: 4.8, AveragePlayers: 30},
		{Name: "Houstonian Club", Address: "111 North Post Oak Ln, Houston, TX 77024", Latitude: 29.7672, Longitude: -95.4618, Hours: "5:00 am - 10:00 pm", PhoneNumber: "713-680-2626", Rating: 4.9, AveragePlayers: 16},
		{Name: "Fitness Connection - Westheimer", Address: "13359 Westheimer Rd, Houston, TX 77077", Latitude: 29.7358, Longitude: -95.6489, Hours: "24 hours", PhoneNumber: "281-496-2000", Rating: 4.4, AveragePlayers: 25},
		{Name: "Equinox - River Oaks", Address: "1900 West Gray St, Houston, TX 77019", Latitude: 29.7498, Longitude: -95.3987, Hours: "5:00 am - 10:00 pm", PhoneNumber: "713-807-8200", Rating: 4.7, AveragePlayers: 18},
		{Name: "24 Hour Fitness - Greenway Plaza", Address: "3663 Richmond Ave, Houston, TX 77046", Latitude: 29.7345, Longitude: -95.4418, Hours: "24 hours", PhoneNumber: "713-621-2424", Rating: 4.3, AveragePlayers: 21},
		{Name: "Gold's Gym - Galleria", Address: "5005 Woodway Dr, Houston, TX 77056", Latitude: 29.7496, Longitude: -95.4628, Hours: "5:00 am - 11:00 pm", PhoneNumber: "713-961-0020", Rating: 4.5, AveragePlayers: 19},
	}
}
