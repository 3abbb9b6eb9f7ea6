package fund

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/openalpha/fundchain/x/fund/keeper"
	"github.com/openalpha/fundchain/x/fund/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for fund
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgCreateFund{}, "fund/MsgCreateFund", nil)
	cdc.RegisterConcrete(&types.MsgDeposit{}, "fund/MsgDeposit", nil)
	cdc.RegisterConcrete(&types.MsgWithdraw{}, "fund/MsgWithdraw", nil)
	cdc.RegisterConcrete(&types.MsgTransferShares{}, "fund/MsgTransferShares", nil)
	cdc.RegisterConcrete(&types.MsgTrade{}, "fund/MsgTrade", nil)
	cdc.RegisterConcrete(&types.MsgBuyPool{}, "fund/MsgBuyPool", nil)
	cdc.RegisterConcrete(&types.MsgSellPool{}, "fund/MsgSellPool", nil)
	cdc.RegisterConcrete(&types.MsgCallDefi{}, "fund/MsgCallDefi", nil)
	cdc.RegisterConcrete(&types.MsgWithdrawManagerFee{}, "fund/MsgWithdrawManagerFee", nil)
	cdc.RegisterConcrete(&types.MsgSetPortal{}, "fund/MsgSetPortal", nil)
	cdc.RegisterConcrete(&types.MsgSetWhitelistOnly{}, "fund/MsgSetWhitelistOnly", nil)
	cdc.RegisterConcrete(&types.MsgSetInvestorAllowed{}, "fund/MsgSetInvestorAllowed", nil)
	cdc.RegisterConcrete(&types.MsgSetTradeVerification{}, "fund/MsgSetTradeVerification", nil)
	cdc.RegisterConcrete(&types.MsgTransferManager{}, "fund/MsgTransferManager", nil)
}

// RegisterInterfaces registers the module's interface types
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgCreateFund{},
		&types.MsgDeposit{},
		&types.MsgWithdraw{},
		&types.MsgTransferShares{},
		&types.MsgTrade{},
		&types.MsgBuyPool{},
		&types.MsgSellPool{},
		&types.MsgCallDefi{},
		&types.MsgWithdrawManagerFee{},
		&types.MsgSetPortal{},
		&types.MsgSetWhitelistOnly{},
		&types.MsgSetInvestorAllowed{},
		&types.MsgSetTradeVerification{},
		&types.MsgTransferManager{},
	)
}

// DefaultGenesis returns default genesis state as raw bytes
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	return nil
}

// ValidateGenesis performs genesis state validation
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	return nil
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {
	// TODO: Register gRPC gateway routes when proto generation is set up
}

// AppModule implements an application module for the fund module
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name
func (am AppModule) Name() string {
	return ModuleName
}

// RegisterServices registers the fund message service on the configurator's
// message router.
func (am AppModule) RegisterServices(cfg module.Configurator) {
	types.RegisterMsgServer(cfg.MsgServer(), keeper.NewMsgServerImpl(am.keeper))
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface
func (am AppModule) IsAppModule() {}
