package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/livetournois/tournament-manager/models"
)

const dateLayout = "2006-01-02"

// WriteTournamentRoster renders a printable roster for a tournament:
// header, key facts and one row per registered team.
func WriteTournamentRoster(w io.Writer, tournament *models.Tournament, registrations []models.Registration) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(tournament.Name, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tournament.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	writeFact(pdf, "Dates", fmt.Sprintf("%s to %s",
		tournament.StartDate.Format(dateLayout),
		tournament.EndDate.Format(dateLayout)))
	writeFact(pdf, "Location", tournament.Location)
	writeFact(pdf, "Format", tournament.Format)
	writeFact(pdf, "Status", string(tournament.Status))
	if tournament.Game != nil {
		writeFact(pdf, "Game", tournament.Game.Name)
	}
	writeFact(pdf, "Teams", fmt.Sprintf("%d / %d", len(registrations), tournament.MaxTeams))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 8, "Seed", "1", 0, "C", true, 0, "")
	pdf.CellFormat(90, 8, "Team", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Registered", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, registration := range registrations {
		teamName := ""
		if registration.Team != nil {
			teamName = registration.Team.Name
		}
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", registration.Seed), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 7, teamName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, registration.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, registration.CreatedAt.Format(dateLayout), "1", 1, "L", false, 0, "")
	}
	if len(registrations) == 0 {
		pdf.CellFormat(190, 7, "No teams registered yet", "1", 1, "C", false, 0, "")
	}

	writeFooter(pdf)
	return pdf.Output(w)
}

// WriteTeamSheet renders a team fact sheet with its roster.
func WriteTeamSheet(w io.Writer, team *models.Team) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(team.Name, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	title := team.Name
	if team.Tag != "" {
		title = fmt.Sprintf("%s [%s]", team.Name, team.Tag)
	}
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	writeFact(pdf, "Country", team.Country)
	writeFact(pdf, "Created", team.CreatedAt.Format(dateLayout))
	if team.Description != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, team.Description, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(50, 8, "Handle", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Surname", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Birth date", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, player := range team.Players {
		pdf.CellFormat(50, 7, player.Handle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, player.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, player.Surname, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, player.BirthDate.Format(dateLayout), "1", 1, "L", false, 0, "")
	}
	if len(team.Players) == 0 {
		pdf.CellFormat(190, 7, "No players on the roster", "1", 1, "C", false, 0, "")
	}

	writeFooter(pdf)
	return pdf.Output(w)
}

// WritePlayerSheet renders a one-page fact sheet for a single player.
func WritePlayerSheet(w io.Writer, player *models.Player, team *models.Team) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(player.Handle, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, player.Handle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	writeFact(pdf, "Name", player.Name)
	writeFact(pdf, "Surname", player.Surname)
	writeFact(pdf, "Birth date", player.BirthDate.Format(dateLayout))
	if team != nil {
		writeFact(pdf, "Team", team.Name)
	} else {
		writeFact(pdf, "Team", "unattached")
	}

	writeFooter(pdf)
	return pdf.Output(w)
}

func writeFact(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func writeFooter(pdf *gofpdf.Fpdf) {
	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")), "", 0, "C", false, 0, "")
}
