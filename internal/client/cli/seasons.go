package cli

import (
	"context"
	"fmt"

	"fasalmitra/internal/models"
)

func (a *App) Seasons(ctx context.Context) error {
	if err := a.session.Guard(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	resp, err := a.api.ListSeasons(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if len(resp.Seasons) == 0 {
		fmt.Fprintln(a.out, "No seasons yet. Use 'newseason' to start one.")
		return nil
	}
	for _, s := range resp.Seasons {
		fmt.Fprintf(a.out, "%s  %s (%s, %s)\n", s.ID, s.CropType, s.CurrentPhase, s.Status)
	}
	return nil
}

func (a *App) NewSeason(ctx context.Context) error {
	if err := a.session.Guard(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	crop, err := GetSimpleText(a.reader, "Crop type (e.g. wheat, rice, tomato)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if crop == "" {
		fmt.Fprintln(a.out, "Crop type is required")
		return nil
	}
	soil, err := GetSimpleText(a.reader, "Soil type (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	req := models.CreateSeasonRequest{CropType: crop}
	if soil != "" {
		req.SoilType = &soil
	}
	resp, err := a.api.CreateSeason(ctx, req)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Season started: %s (%s)\n", resp.CropType, resp.ID)
	return nil
}

func (a *App) Current(ctx context.Context) error {
	if err := a.session.Guard(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	resp, err := a.api.CurrentSeason(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if !resp.Success || resp.Season == nil {
		fmt.Fprintln(a.out, "No active season.")
		return nil
	}
	fmt.Fprintf(a.out, "Current season: %s, phase %s (%s)\n", resp.Season.CropType, resp.Season.Phase, resp.Season.ID)
	return nil
}
