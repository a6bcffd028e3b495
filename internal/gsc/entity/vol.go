package entity

import "time"

// Vol is a scheduled flight, the anchor of every downstream document.
type Vol struct {
	ID                  string    `json:"id" gorm:"primaryKey;size:32"`
	FlightNumber        string    `json:"flight_number" gorm:"size:20;not null;index"`
	FlightDate          time.Time `json:"flight_date" gorm:"not null;index"`
	DepartureTime       string    `json:"departure_time" gorm:"size:5"`
	ArrivalTime         string    `json:"arrival_time" gorm:"size:5"`
	Aircraft            string    `json:"aircraft" gorm:"size:10"`
	Origin              string    `json:"origin" gorm:"size:100"`
	Destination         string    `json:"destination" gorm:"size:100"`
	Zone                string    `json:"zone" gorm:"size:50;not null;index"`
	EstimatedPassengers int       `json:"estimated_passengers"`
	ActualPassengers    int       `json:"actual_passengers"`
	DurationMinutes     int       `json:"duration_minutes"`
	Season              string    `json:"season" gorm:"size:20"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	PlanHebergement *PlanHebergement          `json:"plan_hebergement,omitempty" gorm:"foreignKey:VolID"`
	BCPs            []BonCommandePrevisionnel `json:"bcps,omitempty" gorm:"foreignKey:VolID"`
	BLs             []BonLivraison            `json:"bls,omitempty" gorm:"foreignKey:VolID"`
	BoitesMedicales []VolBoiteMedicale        `json:"boites_medicales,omitempty" gorm:"foreignKey:VolID"`
	DossierVol      *DossierVol               `json:"dossier_vol,omitempty" gorm:"foreignKey:VolID"`
}

func (Vol) TableName() string {
	return "gsc_vols"
}
