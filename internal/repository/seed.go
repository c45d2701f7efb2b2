package repository

import (
	"time"

	"github.com/yourorg/shipkeeper/internal/domain"
)

// seedState returns the demo fleet used when no document exists yet.
// One account per role, two ships, two components, one open job and the
// notification its creation would have produced.
func seedState(now time.Time) *domain.State {
	return &domain.State{
		Users: []domain.User{
			{ID: "1", Role: domain.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
			{ID: "2", Role: domain.RoleInspector, Email: "inspector@entnt.in", Password: "inspect123"},
			{ID: "3", Role: domain.RoleEngineer, Email: "engineer@entnt.in", Password: "engine123"},
		},
		Ships: []domain.Ship{
			{ID: "s1", Name: "Ever Given", IMO: "9811000", Flag: "Panama", Status: domain.ShipActive},
			{ID: "s2", Name: "Maersk Alabama", IMO: "9164263", Flag: "USA", Status: domain.ShipUnderMaintenance},
		},
		Components: []domain.Component{
			{
				ID:                  "c1",
				ShipID:              "s1",
				Name:                "Main Engine",
				SerialNumber:        "ME-1234",
				InstallDate:         "2020-01-10",
				LastMaintenanceDate: "2024-03-12",
			},
			{
				ID:                  "c2",
				ShipID:              "s2",
				Name:                "Radar",
				SerialNumber:        "RAD-5678",
				InstallDate:         "2021-07-18",
				LastMaintenanceDate: "2023-12-01",
			},
		},
		Jobs: []domain.Job{
			{
				ID:                 "j1",
				ComponentID:        "c1",
				ShipID:             "s1",
				Type:               domain.JobInspection,
				Priority:           domain.PriorityHigh,
				Status:             domain.JobOpen,
				AssignedEngineerID: "3",
				ScheduledDate:      "2025-05-05",
			},
		},
		Notifications: []domain.Notification{
			{
				ID:        "n1",
				Type:      domain.NotifJobCreated,
				Message:   "New inspection job created for Main Engine on Ever Given",
				Timestamp: now.UTC().Format(time.RFC3339),
				Read:      false,
				JobID:     "j1",
			},
		},
	}
}
