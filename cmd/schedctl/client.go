package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient(apiURL string) *resty.Client {
	return resty.New().
		SetBaseURL(apiURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}

func printResponse(out io.Writer, resp *resty.Response, okStatus int) error {
	if resp.StatusCode() != okStatus {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	if len(resp.Body()) > 0 {
		fmt.Fprintln(out, resp.String())
	}
	return nil
}

func runConnect(apiURL, userID, provider, token, timeZone string, out io.Writer) error {
	body := map[string]string{
		"provider":    provider,
		"accessToken": token,
	}
	if timeZone != "" {
		body["timeZone"] = timeZone
	}
	resp, err := newClient(apiURL).R().
		SetBody(body).
		Put(fmt.Sprintf("/api/users/%s/calendar/token", userID))
	if err != nil {
		return err
	}
	return printResponse(out, resp, http.StatusOK)
}

func runStatus(apiURL, userID string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		Get(fmt.Sprintf("/api/users/%s/calendar/token", userID))
	if err != nil {
		return err
	}
	return printResponse(out, resp, http.StatusOK)
}

func runDisconnect(apiURL, userID string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		Delete(fmt.Sprintf("/api/users/%s/calendar/token", userID))
	if err != nil {
		return err
	}
	if err := printResponse(out, resp, http.StatusNoContent); err != nil {
		return err
	}
	fmt.Fprintln(out, "disconnected")
	return nil
}

func runAnalyze(apiURL, userID, serviceType, targetDate string, out io.Writer) error {
	if serviceType == "" {
		return fmt.Errorf("service type cannot be empty")
	}
	body := map[string]string{"serviceType": serviceType}
	if targetDate != "" {
		body["targetDate"] = targetDate
	}
	resp, err := newClient(apiURL).R().
		SetBody(body).
		Post(fmt.Sprintf("/api/users/%s/availability/analyze", userID))
	if err != nil {
		return err
	}
	return printResponse(out, resp, http.StatusOK)
}

func runFreeBusy(apiURL, userID, timeMin, timeMax string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		SetQueryParams(map[string]string{"timeMin": timeMin, "timeMax": timeMax}).
		Get(fmt.Sprintf("/api/users/%s/freebusy", userID))
	if err != nil {
		return err
	}
	return printResponse(out, resp, http.StatusOK)
}
