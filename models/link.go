package models

import (
	"time"
)

// Link - короткая ссылка на WhatsApp (redirect или microlanding)
type Link struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	PhoneNumber string    `json:"phoneNumber" gorm:"type:varchar(30);not null"`
	Message     string    `json:"message" gorm:"type:text"`
	Type        string    `json:"type" gorm:"type:varchar(20);not null;default:redirect"` // строго: "redirect" | "microlanding"
	Clicks      int       `json:"clicks" gorm:"not null;default:0"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	MicrolandingConfig *MicrolandingConfig  `json:"microlandingConfig" gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE"`
	FacebookPixel      *FacebookPixelConfig `json:"facebookPixel" gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE"`
}

type MicrolandingColors struct {
	Primary          string `json:"primary" gorm:"type:varchar(20)"`
	Background       string `json:"background" gorm:"type:varchar(20)"`
	Text             string `json:"text" gorm:"type:varchar(20)"`
	ButtonBackground string `json:"buttonBackground" gorm:"type:varchar(20)"`
	ButtonText       string `json:"buttonText" gorm:"type:varchar(20)"`
}

type MicrolandingConfig struct {
	ID     uint `json:"-" gorm:"primaryKey"`
	LinkID uint `json:"-" gorm:"not null;uniqueIndex"`

	ShowLogo          bool `json:"showLogo"`
	ShowImage         bool `json:"showImage"`
	ShowHeaderText    bool `json:"showHeaderText"`
	ShowSubheaderText bool `json:"showSubheaderText"`
	ShowFooterText    bool `json:"showFooterText"`

	LogoURL  string `json:"logoUrl" gorm:"type:text"`
	ImageURL string `json:"imageUrl" gorm:"type:text"`

	LogoSize             string `json:"logoSize" gorm:"type:varchar(10)"` // small..xxxlarge
	LogoGlassmorphism    bool   `json:"logoGlassmorphism"`
	LogoGlassOpacity     int    `json:"logoGlassOpacity"` // 0-100
	LogoVerticalPosition int    `json:"logoVerticalPosition"`

	HeaderText           string `json:"headerText" gorm:"type:text"`
	SubheaderText        string `json:"subheaderText" gorm:"type:text"`
	Title                string `json:"title" gorm:"type:text"`
	Description          string `json:"description" gorm:"type:text"`
	DescriptionBold      bool   `json:"descriptionBold"`
	DescriptionUnderline bool   `json:"descriptionUnderline"`
	FooterText           string `json:"footerText" gorm:"type:text"`
	FooterTextSize       int    `json:"footerTextSize"`

	ButtonText         string `json:"buttonText" gorm:"type:varchar(100)"`
	ButtonIcon         string `json:"buttonIcon" gorm:"type:varchar(20)"` // whatsapp | phone | message | none
	ButtonBorderRadius int    `json:"buttonBorderRadius"`

	Colors MicrolandingColors `json:"colors" gorm:"embedded;embeddedPrefix:color_"`
}

type FacebookPixelConfig struct {
	ID     uint `json:"-" gorm:"primaryKey"`
	LinkID uint `json:"-" gorm:"not null;uniqueIndex"`

	PixelID          string   `json:"pixelId" gorm:"type:varchar(50)"`
	ViewContentEvent bool     `json:"viewContentEvent"`
	LeadEvent        bool     `json:"leadEvent"`
	CustomEvents     []string `json:"customEvents" gorm:"serializer:json;type:text"`
}

// DefaultMicrolandingConfig возвращает конфиг microlanding по умолчанию
func DefaultMicrolandingConfig() *MicrolandingConfig {
	return &MicrolandingConfig{
		ShowLogo:          true,
		ShowImage:         true,
		ShowHeaderText:    true,
		ShowSubheaderText: true,
		ShowFooterText:    true,
		LogoSize:          "large",
		LogoGlassOpacity:  20,
		HeaderText:        "Activos en este momento",
		SubheaderText:     "Reclama tu Bono del 100%",
		Title:             "Contáctanos",
		Description:       "Escríbenos apretando el botón de abajo",
		FooterText:        "Solo para mayores de 18 años",
		FooterTextSize:    18,
		ButtonText:         "WHATSAPP OFICIAL",
		ButtonIcon:         "whatsapp",
		ButtonBorderRadius: 25,
		Colors: MicrolandingColors{
			Primary:          "#4CAF50",
			Background:       "#0A1628",
			Text:             "#FFFFFF",
			ButtonBackground: "#25D366",
			ButtonText:       "#FFFFFF",
		},
	}
}

func DefaultFacebookPixelConfig() *FacebookPixelConfig {
	return &FacebookPixelConfig{
		ViewContentEvent: true,
		LeadEvent:        true,
		CustomEvents:     []string{},
	}
}
