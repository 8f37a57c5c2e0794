package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/logger"
	"jeffika-cabs-backend/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

type receiptService struct {
	hireRepo   repository.HireRepository
	userRepo   repository.UserRepository
	emailSvc   EmailService
	adminEmail string
}

func NewReceiptService(hireRepo repository.HireRepository, userRepo repository.UserRepository, emailSvc EmailService, adminEmail string) ReceiptService {
	return &receiptService{
		hireRepo:   hireRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		adminEmail: adminEmail,
	}
}

func (s *receiptService) SendReceipt(ctx context.Context, userID, hireID int32) (string, error) {
	hire, err := s.hireRepo.GetByIDForUser(ctx, hireID, userID)
	if err != nil {
		return "", err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	pdf, err := s.BuildReceiptPDF(hire, user)
	if err != nil {
		return "", fmt.Errorf("building receipt: %w", err)
	}

	if err := s.emailSvc.SendHireReceipt(ctx, user.Email, user.Name, hire, pdf); err != nil {
		return "", err
	}

	// Admin copy is best-effort.
	if s.adminEmail != "" {
		if err := s.emailSvc.SendHireReceipt(ctx, s.adminEmail, "Admin", hire, pdf); err != nil {
			logger.Warn("failed to send admin receipt copy", "hire_id", hire.ID, "error", err)
		}
	}

	return fmt.Sprintf("receipt-%d.pdf", hire.ID), nil
}

func (s *receiptService) BuildReceiptPDF(hire *domain.Hire, user *domain.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Jeffika Cabs - Hire Receipt")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Receipt for hire #%d", hire.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Customer: %s (%s)", user.Name, user.Email))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", hire.CreatedOn.Format("02 Jan 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s / payment %s (%s)", hire.Status, hire.Payment.Status, hire.Payment.Method))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Vehicle", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "From", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "To", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Per day", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range hire.Items {
		vehicle := fmt.Sprintf("Car #%d", item.CarID)
		if item.Car != nil {
			vehicle = fmt.Sprintf("%s %s (%s)", item.Car.Brand, item.Car.Model, item.Car.RegistrationNumber)
		}
		pdf.CellFormat(70, 8, vehicle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.StartDate.Format("02 Jan 2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.EndDate.Format("02 Jan 2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("KES %d", item.PricePerDay), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("KES %d", item.TotalPrice), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(160, 10, "Total amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("KES %d", hire.TotalAmount), "1", 1, "R", false, 0, "")

	if hire.Payment.Receipt != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("M-Pesa receipt: %s", hire.Payment.Receipt))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().Format(time.RFC1123)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
