package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

// EncodeMessage renders an event payload as a #SOOM#-delimited message.
// The payload must be the domain payload type of eventType.
func EncodeMessage(eventType string, payload interface{}) (string, error) {
	switch eventType {
	case domain.EventTypeBillingSupported, domain.EventTypeBillingNotSupported,
		domain.EventTypeStoreInitialized, domain.EventTypeRestoreTransactionsStarted,
		domain.EventTypeMarketItemsRefreshStarted, domain.EventTypeIabServiceStarted,
		domain.EventTypeIabServiceStopped:
		return "", nil

	case domain.EventTypeCurrencyBalanceChanged, domain.EventTypeGoodBalanceChanged:
		p, ok := payload.(domain.BalanceChangedPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		return join(p.ItemID, strconv.Itoa(p.Balance), strconv.Itoa(p.AmountAdded))

	case domain.EventTypeGoodEquipped, domain.EventTypeGoodUnequipped,
		domain.EventTypeItemPurchaseStarted, domain.EventTypeMarketPurchaseStarted,
		domain.EventTypeMarketPurchaseCancelled, domain.EventTypeMarketRefund:
		p, ok := payload.(domain.ItemPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		return join(p.ItemID)

	case domain.EventTypeGoodUpgrade:
		p, ok := payload.(domain.GoodUpgradePayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		if p.UpgradeItemID == "" {
			return join(p.GoodItemID)
		}
		return join(p.GoodItemID, p.UpgradeItemID)

	case domain.EventTypeItemPurchased:
		p, ok := payload.(domain.ItemPurchasedPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		if p.Payload == "" {
			return join(p.ItemID)
		}
		return join(p.ItemID, p.Payload)

	case domain.EventTypeMarketPurchase:
		p, ok := payload.(domain.MarketPurchasePayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		return join(p.ItemID, p.Payload, p.Token)

	case domain.EventTypeRestoreTransactionsFinished:
		p, ok := payload.(domain.RestoreTransactionsFinishedPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		return formatFlag(p.Success), nil

	case domain.EventTypeMarketItemsRefreshFinished:
		p, ok := payload.(domain.MarketItemsRefreshFinishedPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		parts := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			data, err := json.Marshal(item)
			if err != nil {
				return "", fmt.Errorf(ErrMsgEncodeFailed, err)
			}
			parts = append(parts, string(data))
		}
		return join(parts...)

	case domain.EventTypeUnexpectedErrorInStore:
		p, ok := payload.(domain.UnexpectedErrorPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		return p.Message, nil

	case domain.EventTypeNonConsumableChanged:
		p, ok := payload.(domain.NonConsumableChangedPayload)
		if !ok {
			return "", unexpectedPayload(eventType, payload)
		}
		return join(p.ItemID, formatFlag(p.Owned))
	}
	return "", fmt.Errorf(ErrMsgUnknownEventTypeFmt, eventType, domain.ErrMalformedWireData)
}

// DecodeMessage parses a message of eventType back into its domain payload
func DecodeMessage(eventType, message string) (interface{}, error) {
	switch eventType {
	case domain.EventTypeBillingSupported, domain.EventTypeBillingNotSupported,
		domain.EventTypeStoreInitialized, domain.EventTypeRestoreTransactionsStarted,
		domain.EventTypeMarketItemsRefreshStarted, domain.EventTypeIabServiceStarted,
		domain.EventTypeIabServiceStopped:
		return domain.SignalPayload{}, nil

	case domain.EventTypeCurrencyBalanceChanged, domain.EventTypeGoodBalanceChanged:
		fields, err := split(eventType, message, 3, 3)
		if err != nil {
			return nil, err
		}
		balance, err := parseInt("balance", fields[1])
		if err != nil {
			return nil, err
		}
		added, err := parseInt("amountAdded", fields[2])
		if err != nil {
			return nil, err
		}
		return domain.BalanceChangedPayload{ItemID: fields[0], Balance: balance, AmountAdded: added}, nil

	case domain.EventTypeGoodEquipped, domain.EventTypeGoodUnequipped,
		domain.EventTypeItemPurchaseStarted, domain.EventTypeMarketPurchaseStarted,
		domain.EventTypeMarketPurchaseCancelled, domain.EventTypeMarketRefund:
		fields, err := split(eventType, message, 1, 1)
		if err != nil {
			return nil, err
		}
		return domain.ItemPayload{ItemID: fields[0]}, nil

	case domain.EventTypeGoodUpgrade:
		fields, err := split(eventType, message, 1, 2)
		if err != nil {
			return nil, err
		}
		p := domain.GoodUpgradePayload{GoodItemID: fields[0]}
		if len(fields) == 2 {
			p.UpgradeItemID = fields[1]
		}
		return p, nil

	case domain.EventTypeItemPurchased:
		fields, err := split(eventType, message, 1, 2)
		if err != nil {
			return nil, err
		}
		p := domain.ItemPurchasedPayload{ItemID: fields[0]}
		if len(fields) == 2 {
			p.Payload = fields[1]
		}
		return p, nil

	case domain.EventTypeMarketPurchase:
		fields, err := split(eventType, message, 3, 3)
		if err != nil {
			return nil, err
		}
		return domain.MarketPurchasePayload{ItemID: fields[0], Payload: fields[1], Token: fields[2]}, nil

	case domain.EventTypeRestoreTransactionsFinished:
		success, err := parseFlag(message)
		if err != nil {
			return nil, err
		}
		return domain.RestoreTransactionsFinishedPayload{Success: success}, nil

	case domain.EventTypeMarketItemsRefreshFinished:
		p := domain.MarketItemsRefreshFinishedPayload{}
		if message == "" {
			return p, nil
		}
		for _, part := range strings.Split(message, MessageSeparator) {
			var details domain.MarketItemDetails
			if err := json.Unmarshal([]byte(part), &details); err != nil {
				return nil, fmt.Errorf("%s: %w: %v", eventType, domain.ErrMalformedWireData, err)
			}
			if details.ProductID == "" {
				return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyProductID, domain.ErrMalformedWireData)
			}
			p.Items = append(p.Items, details)
		}
		return p, nil

	case domain.EventTypeUnexpectedErrorInStore:
		return domain.UnexpectedErrorPayload{Message: message}, nil

	case domain.EventTypeNonConsumableChanged:
		fields, err := split(eventType, message, 2, 2)
		if err != nil {
			return nil, err
		}
		owned, err := parseFlag(fields[1])
		if err != nil {
			return nil, err
		}
		return domain.NonConsumableChangedPayload{ItemID: fields[0], Owned: owned}, nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownEventTypeFmt, eventType, domain.ErrMalformedWireData)
}

// join concatenates fields, refusing fields that would split differently on decode
func join(fields ...string) (string, error) {
	for _, f := range fields {
		if strings.Contains(f, MessageSeparator) {
			return "", fmt.Errorf(ErrMsgInvalidFieldFmt, "field", f, domain.ErrMalformedWireData)
		}
	}
	return strings.Join(fields, MessageSeparator), nil
}

func split(eventType, message string, minFields, maxFields int) ([]string, error) {
	fields := strings.Split(message, MessageSeparator)
	if len(fields) < minFields || len(fields) > maxFields {
		return nil, fmt.Errorf(ErrMsgFieldCountFmt, eventType, maxFields, len(fields), domain.ErrMalformedWireData)
	}
	if fields[0] == "" {
		return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyItemID, domain.ErrMalformedWireData)
	}
	return fields, nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgInvalidFieldFmt, name, value, domain.ErrMalformedWireData)
	}
	return n, nil
}

func formatFlag(v bool) string {
	if v {
		return FlagTrue
	}
	return FlagFalse
}

func parseFlag(value string) (bool, error) {
	switch value {
	case FlagTrue:
		return true, nil
	case FlagFalse:
		return false, nil
	}
	return false, fmt.Errorf(ErrMsgInvalidFieldFmt, "flag", value, domain.ErrMalformedWireData)
}

func unexpectedPayload(eventType string, payload interface{}) error {
	return fmt.Errorf(ErrMsgUnexpectedPayloadFmt, eventType, payload, domain.ErrInvalidInput)
}
