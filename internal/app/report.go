package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"hotelbot/internal/domain"
)

// Report is a snapshot of the database contents.
type Report struct {
	Hotels         []domain.HotelListing      `json:"hotels"`
	RoomTypes      []domain.RoomTypeStat      `json:"room_types"`
	Availability   domain.AvailabilityStat    `json:"availability"`
	RecentBookings []domain.BookingView       `json:"recent_bookings"`
	Cities         []domain.CityStat          `json:"cities"`
	BookingStatus  []domain.BookingStatusStat `json:"booking_status"`
	Overall        domain.OverallStats        `json:"overall"`
}

const reportBookings = 10

type Reporter struct {
	repo domain.ReportRepository
}

func NewReporter(r domain.ReportRepository) *Reporter { return &Reporter{repo: r} }

// Build runs the report queries concurrently; the first failure cancels the rest.
func (r *Reporter) Build(ctx context.Context) (Report, error) {
	var rep Report
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rep.Hotels, err = r.repo.ListHotels(ctx); return })
	g.Go(func() (err error) { rep.RoomTypes, err = r.repo.RoomTypeStats(ctx); return })
	g.Go(func() (err error) { rep.Availability, err = r.repo.AvailabilityStats(ctx); return })
	g.Go(func() (err error) { rep.RecentBookings, err = r.repo.RecentBookings(ctx, reportBookings); return })
	g.Go(func() (err error) { rep.Cities, err = r.repo.CityStats(ctx); return })
	g.Go(func() (err error) { rep.BookingStatus, err = r.repo.BookingStatusStats(ctx); return })
	g.Go(func() (err error) { rep.Overall, err = r.repo.OverallStats(ctx); return })
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}
	return rep, nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

// Render writes the report as plain text tables.
func (rep Report) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	section(tw, "HOTELS")
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tSTARS\tROOMS\tBOOKINGS")
	for _, h := range rep.Hotels {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", h.ID, h.Name, h.City, h.Stars, h.RoomCount, h.BookingCount)
	}
	tw.Flush()

	section(tw, "ROOM STATISTICS")
	fmt.Fprintln(tw, "TYPE\tCOUNT\tPRICE RANGE\tAVG PRICE\tAVG CAPACITY")
	for _, s := range rep.RoomTypes {
		fmt.Fprintf(tw, "%s\t%d\t%s - %s\t%s\t%.1f\n", s.RoomType, s.Count, money(s.MinPrice), money(s.MaxPrice), money(s.AvgPrice), s.AvgCapacity)
	}
	tw.Flush()

	a := rep.Availability
	section(tw, "AVAILABILITY")
	fmt.Fprintf(tw, "Total rooms:\t%d\n", a.TotalRooms)
	fmt.Fprintf(tw, "Available:\t%d\n", a.AvailableRooms)
	fmt.Fprintf(tw, "Occupied:\t%d\n", a.OccupiedRooms)
	fmt.Fprintf(tw, "Availability:\t%.1f%%\n", a.Percentage)
	tw.Flush()

	section(tw, "RECENT BOOKINGS")
	if len(rep.RecentBookings) == 0 {
		fmt.Fprintln(tw, "none")
	} else {
		fmt.Fprintln(tw, "GUEST\tHOTEL\tROOM\tCHECK-IN\tCHECK-OUT\tAMOUNT\tSTATUS")
		for _, b := range rep.RecentBookings {
			amount := "-"
			if b.TotalAmount != nil {
				amount = money(*b.TotalAmount)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s (%s)\t%s\t%s\t%s\t%s\n", b.GuestName, b.HotelName, b.RoomNumber, b.RoomType,
				b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), amount, b.Status)
		}
	}
	tw.Flush()

	section(tw, "CITY STATISTICS")
	fmt.Fprintln(tw, "CITY\tHOTELS\tAVG STARS\tROOMS\tAVAILABLE")
	for _, c := range rep.Cities {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d\t%d\n", c.City, c.HotelCount, c.AvgStars, c.TotalRooms, c.AvailableRooms)
	}
	tw.Flush()

	section(tw, "BOOKING STATUS SUMMARY")
	fmt.Fprintln(tw, "STATUS\tCOUNT\tREVENUE")
	for _, s := range rep.BookingStatus {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Status, s.Count, money(s.Revenue))
	}
	tw.Flush()

	o := rep.Overall
	section(tw, "OVERALL STATISTICS")
	fmt.Fprintf(tw, "Hotels:\t%d\n", o.TotalHotels)
	fmt.Fprintf(tw, "Rooms:\t%d\n", o.TotalRooms)
	fmt.Fprintf(tw, "Bookings:\t%d\n", o.TotalBookings)
	fmt.Fprintf(tw, "Confirmed revenue:\t%s\n", money(o.ConfirmedRevenue))
	fmt.Fprintf(tw, "Average stars:\t%.1f\n", o.AvgHotelStars)
	fmt.Fprintf(tw, "Average room price:\t%s\n", money(o.AvgRoomPrice))
	return tw.Flush()
}
