package types

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateFund         = "create_fund"
	TypeMsgDeposit            = "deposit"
	TypeMsgWithdraw           = "withdraw"
	TypeMsgTransferShares     = "transfer_shares"
	TypeMsgTrade              = "trade"
	TypeMsgBuyPool            = "buy_pool"
	TypeMsgSellPool           = "sell_pool"
	TypeMsgCallDefi           = "call_defi"
	TypeMsgWithdrawManagerFee = "withdraw_manager_fee"
	TypeMsgSetPortal          = "set_portal"
	TypeMsgSetWhitelistOnly   = "set_whitelist_only"
	TypeMsgSetInvestorAllowed   = "set_investor_allowed"
	TypeMsgSetTradeVerification = "set_trade_verification"
	TypeMsgTransferManager      = "transfer_manager"
)

// MsgCreateFund defines the CreateFund message
type MsgCreateFund struct {
	Manager        string `json:"manager"`
	Name           string `json:"name"`
	FundType       string `json:"fund_type"`
	BaseAsset      string `json:"base_asset"`
	Platform       string `json:"platform"`
	SuccessFeeBps  int64  `json:"success_fee_bps"`
	PlatformFeeBps int64  `json:"platform_fee_bps"`
	ExchangePortal string `json:"exchange_portal"`
	PoolPortal     string `json:"pool_portal,omitempty"`
	DefiPortal     string `json:"defi_portal,omitempty"`
	WhitelistOnly  bool   `json:"whitelist_only"`
	TradeVerify    bool   `json:"trade_verify"`
}

// Route implements sdk.Msg
func (msg MsgCreateFund) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateFund) Type() string { return TypeMsgCreateFund }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateFund) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.Name == "" {
		return errors.New("fund name cannot be empty")
	}
	if msg.BaseAsset == "" {
		return errors.New("base asset cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateFund) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateFund) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateFund) Reset() { *msg = MsgCreateFund{} }

// String implements proto.Message
func (msg MsgCreateFund) String() string {
	return fmt.Sprintf("MsgCreateFund{Manager: %s, Name: %s, BaseAsset: %s}", msg.Manager, msg.Name, msg.BaseAsset)
}

// XXX_MessageName returns the message type URL for MsgCreateFund
func (msg *MsgCreateFund) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgCreateFund"
}

// MsgCreateFundResponse defines the CreateFund response
type MsgCreateFundResponse struct {
	FundID string `json:"fund_id"`
}

// MsgDeposit defines the Deposit message
type MsgDeposit struct {
	Investor string `json:"investor"`
	FundID   string `json:"fund_id"`
	Amount   string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDeposit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDeposit) Type() string { return TypeMsgDeposit }

// ValidateBasic implements sdk.Msg
func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Investor); err != nil {
		return err
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Investor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDeposit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDeposit) Reset() { *msg = MsgDeposit{} }

// String implements proto.Message
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{Investor: %s, FundID: %s, Amount: %s}", msg.Investor, msg.FundID, msg.Amount)
}

// XXX_MessageName returns the message type URL for MsgDeposit
func (msg *MsgDeposit) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgDeposit"
}

// MsgDepositResponse defines the Deposit response
type MsgDepositResponse struct {
	SharesMinted string `json:"shares_minted"`
	FundValue    string `json:"fund_value"`
}

// MsgWithdraw defines the Withdraw message. PercentBps of 0 withdraws the
// investor's entire position.
type MsgWithdraw struct {
	Investor      string `json:"investor"`
	FundID        string `json:"fund_id"`
	PercentBps    int64  `json:"percent_bps"`
	ConvertToBase bool   `json:"convert_to_base"`
}

// Route implements sdk.Msg
func (msg MsgWithdraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdraw) Type() string { return TypeMsgWithdraw }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Investor); err != nil {
		return err
	}
	if msg.PercentBps < 0 || msg.PercentBps > TotalBps {
		return ErrInvalidPercentage
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Investor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdraw) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdraw) Reset() { *msg = MsgWithdraw{} }

// String implements proto.Message
func (msg MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{Investor: %s, FundID: %s, PercentBps: %d}", msg.Investor, msg.FundID, msg.PercentBps)
}

// XXX_MessageName returns the message type URL for MsgWithdraw
func (msg *MsgWithdraw) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgWithdraw"
}

// MsgWithdrawResponse defines the Withdraw response
type MsgWithdrawResponse struct {
	SharesBurned   string            `json:"shares_burned"`
	AssetsReceived map[string]string `json:"assets_received"`
}

// MsgTransferShares defines the TransferShares message
type MsgTransferShares struct {
	From   string `json:"from"`
	To     string `json:"to"`
	FundID string `json:"fund_id"`
	Shares string `json:"shares"`
}

// Route implements sdk.Msg
func (msg MsgTransferShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferShares) Type() string { return TypeMsgTransferShares }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return err
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferShares) Reset() { *msg = MsgTransferShares{} }

// String implements proto.Message
func (msg MsgTransferShares) String() string {
	return fmt.Sprintf("MsgTransferShares{From: %s, To: %s, FundID: %s, Shares: %s}", msg.From, msg.To, msg.FundID, msg.Shares)
}

// XXX_MessageName returns the message type URL for MsgTransferShares
func (msg *MsgTransferShares) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgTransferShares"
}

// MsgTransferSharesResponse defines the TransferShares response
type MsgTransferSharesResponse struct {
	CostBasisMoved string `json:"cost_basis_moved"`
}

// MsgTrade defines the Trade message (manager only)
type MsgTrade struct {
	Manager       string   `json:"manager"`
	FundID        string   `json:"fund_id"`
	SourceAsset   string   `json:"source_asset"`
	Amount        string   `json:"amount"`
	DestAsset     string   `json:"dest_asset"`
	MinimumReturn string   `json:"minimum_return"`
	Proof         []string `json:"proof,omitempty"`
	RoutingData   []byte   `json:"routing_data,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgTrade) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTrade) Type() string { return TypeMsgTrade }

// ValidateBasic implements sdk.Msg
func (msg MsgTrade) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.SourceAsset == "" || msg.DestAsset == "" {
		return errors.New("trade assets cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTrade) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTrade) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTrade) Reset() { *msg = MsgTrade{} }

// String implements proto.Message
func (msg MsgTrade) String() string {
	return fmt.Sprintf("MsgTrade{FundID: %s, %s -> %s, Amount: %s}", msg.FundID, msg.SourceAsset, msg.DestAsset, msg.Amount)
}

// XXX_MessageName returns the message type URL for MsgTrade
func (msg *MsgTrade) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgTrade"
}

// MsgTradeResponse defines the Trade response
type MsgTradeResponse struct {
	AmountReceived string `json:"amount_received"`
}

// MsgBuyPool defines the BuyPool message (manager only, full funds)
type MsgBuyPool struct {
	Manager    string   `json:"manager"`
	FundID     string   `json:"fund_id"`
	PoolToken  string   `json:"pool_token"`
	BaseAmount string   `json:"base_amount"`
	Connectors []string `json:"connectors,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgBuyPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgBuyPool) Type() string { return TypeMsgBuyPool }

// ValidateBasic implements sdk.Msg
func (msg MsgBuyPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.PoolToken == "" {
		return errors.New("pool token cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgBuyPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgBuyPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBuyPool) Reset() { *msg = MsgBuyPool{} }

// String implements proto.Message
func (msg MsgBuyPool) String() string {
	return fmt.Sprintf("MsgBuyPool{FundID: %s, PoolToken: %s, BaseAmount: %s}", msg.FundID, msg.PoolToken, msg.BaseAmount)
}

// XXX_MessageName returns the message type URL for MsgBuyPool
func (msg *MsgBuyPool) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgBuyPool"
}

// MsgBuyPoolResponse defines the BuyPool response
type MsgBuyPoolResponse struct {
	PoolTokensReceived string `json:"pool_tokens_received"`
}

// MsgSellPool defines the SellPool message (manager only, full funds)
type MsgSellPool struct {
	Manager    string `json:"manager"`
	FundID     string `json:"fund_id"`
	PoolToken  string `json:"pool_token"`
	PoolAmount string `json:"pool_amount"`
}

// Route implements sdk.Msg
func (msg MsgSellPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSellPool) Type() string { return TypeMsgSellPool }

// ValidateBasic implements sdk.Msg
func (msg MsgSellPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.PoolToken == "" {
		return errors.New("pool token cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSellPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSellPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSellPool) Reset() { *msg = MsgSellPool{} }

// String implements proto.Message
func (msg MsgSellPool) String() string {
	return fmt.Sprintf("MsgSellPool{FundID: %s, PoolToken: %s, PoolAmount: %s}", msg.FundID, msg.PoolToken, msg.PoolAmount)
}

// XXX_MessageName returns the message type URL for MsgSellPool
func (msg *MsgSellPool) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSellPool"
}

// MsgSellPoolResponse defines the SellPool response
type MsgSellPoolResponse struct {
	ConnectorsReceived map[string]string `json:"connectors_received"`
}

// MsgCallDefi defines the CallDefi message (manager only, full funds)
type MsgCallDefi struct {
	Manager       string   `json:"manager"`
	FundID        string   `json:"fund_id"`
	TargetAssets  []string `json:"target_assets"`
	Amounts       []string `json:"amounts"`
	Selectors     []string `json:"selectors"`
	EncodedParams []byte   `json:"encoded_params,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgCallDefi) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCallDefi) Type() string { return TypeMsgCallDefi }

// ValidateBasic implements sdk.Msg
func (msg MsgCallDefi) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if len(msg.TargetAssets) == 0 {
		return errors.New("target assets cannot be empty")
	}
	if len(msg.TargetAssets) != len(msg.Amounts) {
		return errors.New("target assets and amounts length mismatch")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCallDefi) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCallDefi) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCallDefi) Reset() { *msg = MsgCallDefi{} }

// String implements proto.Message
func (msg MsgCallDefi) String() string {
	return fmt.Sprintf("MsgCallDefi{FundID: %s, Targets: %d}", msg.FundID, len(msg.TargetAssets))
}

// XXX_MessageName returns the message type URL for MsgCallDefi
func (msg *MsgCallDefi) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgCallDefi"
}

// MsgCallDefiResponse defines the CallDefi response
type MsgCallDefiResponse struct {
	Result []byte `json:"result,omitempty"`
}

// MsgWithdrawManagerFee defines the WithdrawManagerFee message
type MsgWithdrawManagerFee struct {
	Manager       string `json:"manager"`
	FundID        string `json:"fund_id"`
	ConvertToBase bool   `json:"convert_to_base"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawManagerFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawManagerFee) Type() string { return TypeMsgWithdrawManagerFee }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawManagerFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawManagerFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawManagerFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawManagerFee) Reset() { *msg = MsgWithdrawManagerFee{} }

// String implements proto.Message
func (msg MsgWithdrawManagerFee) String() string {
	return fmt.Sprintf("MsgWithdrawManagerFee{Manager: %s, FundID: %s}", msg.Manager, msg.FundID)
}

// XXX_MessageName returns the message type URL for MsgWithdrawManagerFee
func (msg *MsgWithdrawManagerFee) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgWithdrawManagerFee"
}

// MsgWithdrawManagerFeeResponse defines the WithdrawManagerFee response
type MsgWithdrawManagerFeeResponse struct {
	ManagerPayout  string `json:"manager_payout"`
	PlatformPayout string `json:"platform_payout"`
}

// MsgSetPortal defines the SetPortal message (manager only)
type MsgSetPortal struct {
	Manager string `json:"manager"`
	FundID  string `json:"fund_id"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

// Route implements sdk.Msg
func (msg MsgSetPortal) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPortal) Type() string { return TypeMsgSetPortal }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPortal) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	switch msg.Role {
	case PortalRoleExchange, PortalRolePool, PortalRoleDefi:
	default:
		return errors.New("unknown portal role")
	}
	if msg.Address == "" {
		return errors.New("portal address cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetPortal) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetPortal) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPortal) Reset() { *msg = MsgSetPortal{} }

// String implements proto.Message
func (msg MsgSetPortal) String() string {
	return fmt.Sprintf("MsgSetPortal{FundID: %s, Role: %s, Address: %s}", msg.FundID, msg.Role, msg.Address)
}

// XXX_MessageName returns the message type URL for MsgSetPortal
func (msg *MsgSetPortal) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetPortal"
}

// MsgSetPortalResponse defines the SetPortal response
type MsgSetPortalResponse struct{}

// MsgSetWhitelistOnly defines the SetWhitelistOnly message (manager only)
type MsgSetWhitelistOnly struct {
	Manager string `json:"manager"`
	FundID  string `json:"fund_id"`
	Enabled bool   `json:"enabled"`
}

// Route implements sdk.Msg
func (msg MsgSetWhitelistOnly) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetWhitelistOnly) Type() string { return TypeMsgSetWhitelistOnly }

// ValidateBasic implements sdk.Msg
func (msg MsgSetWhitelistOnly) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetWhitelistOnly) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetWhitelistOnly) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetWhitelistOnly) Reset() { *msg = MsgSetWhitelistOnly{} }

// String implements proto.Message
func (msg MsgSetWhitelistOnly) String() string {
	return fmt.Sprintf("MsgSetWhitelistOnly{FundID: %s, Enabled: %t}", msg.FundID, msg.Enabled)
}

// XXX_MessageName returns the message type URL for MsgSetWhitelistOnly
func (msg *MsgSetWhitelistOnly) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetWhitelistOnly"
}

// MsgSetWhitelistOnlyResponse defines the SetWhitelistOnly response
type MsgSetWhitelistOnlyResponse struct{}

// MsgSetInvestorAllowed defines the SetInvestorAllowed message (manager only)
type MsgSetInvestorAllowed struct {
	Manager  string `json:"manager"`
	FundID   string `json:"fund_id"`
	Investor string `json:"investor"`
	Allowed  bool   `json:"allowed"`
}

// Route implements sdk.Msg
func (msg MsgSetInvestorAllowed) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetInvestorAllowed) Type() string { return TypeMsgSetInvestorAllowed }

// ValidateBasic implements sdk.Msg
func (msg MsgSetInvestorAllowed) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Investor); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetInvestorAllowed) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetInvestorAllowed) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetInvestorAllowed) Reset() { *msg = MsgSetInvestorAllowed{} }

// String implements proto.Message
func (msg MsgSetInvestorAllowed) String() string {
	return fmt.Sprintf("MsgSetInvestorAllowed{FundID: %s, Investor: %s, Allowed: %t}", msg.FundID, msg.Investor, msg.Allowed)
}

// XXX_MessageName returns the message type URL for MsgSetInvestorAllowed
func (msg *MsgSetInvestorAllowed) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetInvestorAllowed"
}

// MsgSetInvestorAllowedResponse defines the SetInvestorAllowed response
type MsgSetInvestorAllowedResponse struct{}

// MsgSetTradeVerification defines the SetTradeVerification message (manager only)
type MsgSetTradeVerification struct {
	Manager string `json:"manager"`
	FundID  string `json:"fund_id"`
	Enabled bool   `json:"enabled"`
}

// Route implements sdk.Msg
func (msg MsgSetTradeVerification) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetTradeVerification) Type() string { return TypeMsgSetTradeVerification }

// ValidateBasic implements sdk.Msg
func (msg MsgSetTradeVerification) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.FundID == "" {
		return ErrFundNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetTradeVerification) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetTradeVerification) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetTradeVerification) Reset() { *msg = MsgSetTradeVerification{} }

// String implements proto.Message
func (msg MsgSetTradeVerification) String() string {
	return fmt.Sprintf("MsgSetTradeVerification{FundID: %s, Enabled: %t}", msg.FundID, msg.Enabled)
}

// XXX_MessageName returns the message type URL for MsgSetTradeVerification
func (msg *MsgSetTradeVerification) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgSetTradeVerification"
}

// MsgSetTradeVerificationResponse defines the SetTradeVerification response
type MsgSetTradeVerificationResponse struct{}

// MsgTransferManager defines the TransferManager message (manager only)
type MsgTransferManager struct {
	Manager    string `json:"manager"`
	FundID     string `json:"fund_id"`
	NewManager string `json:"new_manager"`
}

// Route implements sdk.Msg
func (msg MsgTransferManager) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferManager) Type() string { return TypeMsgTransferManager }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferManager) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewManager); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferManager) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferManager) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferManager) Reset() { *msg = MsgTransferManager{} }

// String implements proto.Message
func (msg MsgTransferManager) String() string {
	return fmt.Sprintf("MsgTransferManager{FundID: %s, NewManager: %s}", msg.FundID, msg.NewManager)
}

// XXX_MessageName returns the message type URL for MsgTransferManager
func (msg *MsgTransferManager) XXX_MessageName() string {
	return "fundchain.fund.v1.MsgTransferManager"
}

// MsgTransferManagerResponse defines the TransferManager response
type MsgTransferManagerResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateFund{}
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgTransferShares{}
	_ sdk.Msg = &MsgTrade{}
	_ sdk.Msg = &MsgBuyPool{}
	_ sdk.Msg = &MsgSellPool{}
	_ sdk.Msg = &MsgCallDefi{}
	_ sdk.Msg = &MsgWithdrawManagerFee{}
	_ sdk.Msg = &MsgSetPortal{}
	_ sdk.Msg = &MsgSetWhitelistOnly{}
	_ sdk.Msg = &MsgSetInvestorAllowed{}
	_ sdk.Msg = &MsgSetTradeVerification{}
	_ sdk.Msg = &MsgTransferManager{}
)
