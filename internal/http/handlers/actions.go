package handlers

import (
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"

	domaingames "baseball-games-service/internal/domain/games"
)

var errUnknownAction = errors.New("unknown action")

type startRequest struct {
	Status *domaingames.GameStatus `json:"status"`
}

type scoreRequest struct {
	Runs int `json:"runs"`
}

type outRequest struct {
	Count int `json:"count"`
}

type advanceRequest struct {
	ForceInning *int              `json:"forceInning"`
	ForceHalf   *domaingames.Half `json:"forceHalf"`
}

type endRequest struct {
	Status *domaingames.GameStatus `json:"status"`
	Notes  string                  `json:"notes"`
}

type correctRequest struct {
	CurrentInning    *int              `json:"currentInning"`
	CurrentHalf      *domaingames.Half `json:"currentHalf"`
	Outs             *int              `json:"outs"`
	HomeScore        *int              `json:"homeScore"`
	AwayScore        *int              `json:"awayScore"`
	HomeInningScores []int             `json:"homeInningScores"`
	AwayInningScores []int             `json:"awayInningScores"`
	Notes            *string           `json:"notes"`
}

type transitionRequest struct {
	Status domaingames.GameStatus `json:"status"`
	Notes  string                 `json:"notes"`
}

// buildAction decodes the request body into the action named in the path.
// An empty body is a valid zero payload; the controller's structural
// validation decides whether the zero value is acceptable.
func buildAction(name domaingames.ActionName, r *nethttp.Request) (domaingames.Action, error) {
	switch name {
	case domaingames.ActionStart:
		var req startRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.StartAction{Status: req.Status}, nil
	case domaingames.ActionScore:
		var req scoreRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.ScoreAction{Runs: req.Runs}, nil
	case domaingames.ActionOut:
		var req outRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.OutAction{Count: req.Count}, nil
	case domaingames.ActionAdvance:
		var req advanceRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.AdvanceAction{ForceInning: req.ForceInning, ForceHalf: req.ForceHalf}, nil
	case domaingames.ActionEnd:
		var req endRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.EndAction{Status: req.Status, Notes: req.Notes}, nil
	case domaingames.ActionCorrect:
		var req correctRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.CorrectAction{
			CurrentInning:    req.CurrentInning,
			CurrentHalf:      req.CurrentHalf,
			Outs:             req.Outs,
			HomeScore:        req.HomeScore,
			AwayScore:        req.AwayScore,
			HomeInningScores: req.HomeInningScores,
			AwayInningScores: req.AwayInningScores,
			Notes:            req.Notes,
		}, nil
	case domaingames.ActionTransition:
		var req transitionRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return domaingames.TransitionAction{Status: req.Status, Notes: req.Notes}, nil
	default:
		return nil, errUnknownAction
	}
}

func decodeBody(r *nethttp.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
