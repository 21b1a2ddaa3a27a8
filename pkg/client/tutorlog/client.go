package tutorlog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tutorlog/tutorlog/api"
	"github.com/tutorlog/tutorlog/internal/models"
	"github.com/tutorlog/tutorlog/internal/schedule"
)

type Client struct {
	client *resty.Client
	userID uint
}

func NewClient(endpoint string, userID uint) (*Client, error) {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 10).
		SetRetryCount(3)

	client.Header.Add("X-User-ID", strconv.FormatUint(uint64(userID), 10))

	return &Client{client, userID}, nil
}

func (c *Client) Login(req *api.LoginRequest) (*api.LoginResponse, error) {
	res := &api.LoginResponse{}
	_, err := c.client.R().
		SetBody(req).
		SetResult(res).
		SetError(res).
		Post("/api/user/login")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to login: %s", res.Error)
	}

	return res, nil
}

func (c *Client) ListPupils(search string) ([]models.Pupil, error) {
	res := &api.PupilsResponse{}
	req := c.client.R().SetResult(res).SetError(res)
	if search != "" {
		req.SetQueryParam("search", search)
	}
	_, err := req.Get("/api/pupil")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch pupils: %s", res.Error)
	}

	return res.Pupils, nil
}

func (c *Client) ListPupilPayments(pupilID uint) ([]models.Payment, error) {
	res := &api.PaymentsResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetError(res).
		SetPathParam("pupil", strconv.FormatUint(uint64(pupilID), 10)).
		Get("/api/payment/pupil/{pupil}")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch payments: %s", res.Error)
	}

	return res.Payments, nil
}

func (c *Client) LoadCalendar(from, to string) ([]schedule.Instance, error) {
	res := &api.CalendarResponse{}
	req := c.client.R().SetResult(res).SetError(res)
	if from != "" {
		req.SetQueryParam("from", from)
	}
	if to != "" {
		req.SetQueryParam("to", to)
	}
	_, err := req.Get("/api/event")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch calendar: %s", res.Error)
	}

	return res.Instances, nil
}
