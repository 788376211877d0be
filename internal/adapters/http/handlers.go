package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/http/middleware"
	storagepkg "github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	dietplanStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/dietplan"
	memberStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	packStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
	"github.com/Bhaskar125/gym-management-system/internal/application/orchestrators"
	"github.com/Bhaskar125/gym-management-system/internal/application/projections"
	accountDomain "github.com/Bhaskar125/gym-management-system/internal/domain/account"
	billDomain "github.com/Bhaskar125/gym-management-system/internal/domain/bill"
	dietplanDomain "github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
	memberDomain "github.com/Bhaskar125/gym-management-system/internal/domain/member"
	notificationDomain "github.com/Bhaskar125/gym-management-system/internal/domain/notification"
	packDomain "github.com/Bhaskar125/gym-management-system/internal/domain/pack"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// badRequest writes a 400 with the message, including the offending field
// for validation failures.
func badRequest(w http.ResponseWriter, err error) {
	body := map[string]string{"error": err.Error()}
	if field := validation.FieldOf(err); field != "" {
		body["field"] = field
	}
	writeJSON(w, http.StatusBadRequest, body)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/search", handleSearch)

	admin := middleware.RequireRole(accountDomain.RoleAdmin)
	mux.Handle("/admin/stats", admin(http.HandlerFunc(handleAdminStats)))
	mux.Handle("/admin/members", admin(http.HandlerFunc(handleAdminMembers)))
	mux.Handle("/admin/members/update", admin(http.HandlerFunc(handleAdminMemberUpdate)))
	mux.Handle("/admin/members/delete", admin(http.HandlerFunc(handleAdminMemberDelete)))
	mux.Handle("/admin/members/assign-diet", admin(http.HandlerFunc(handleAdminAssignDiet)))
	mux.Handle("/admin/bills", admin(http.HandlerFunc(handleAdminBills)))
	mux.Handle("/admin/bills/update", admin(http.HandlerFunc(handleAdminBillUpdate)))
	mux.Handle("/admin/bills/delete", admin(http.HandlerFunc(handleAdminBillDelete)))
	mux.Handle("/admin/packages", admin(http.HandlerFunc(handleAdminPackages)))
	mux.Handle("/admin/packages/update", admin(http.HandlerFunc(handleAdminPackageUpdate)))
	mux.Handle("/admin/packages/delete", admin(http.HandlerFunc(handleAdminPackageDelete)))
	mux.Handle("/admin/diet-plans", admin(http.HandlerFunc(handleAdminDietPlans)))
	mux.Handle("/admin/diet-plans/update", admin(http.HandlerFunc(handleAdminDietPlanUpdate)))
	mux.Handle("/admin/diet-plans/delete", admin(http.HandlerFunc(handleAdminDietPlanDelete)))
	mux.Handle("/admin/notifications", admin(http.HandlerFunc(handleAdminNotifications)))
	mux.Handle("/admin/notifications/delete", admin(http.HandlerFunc(handleAdminNotificationDelete)))
	mux.Handle("/setup/seed", admin(http.HandlerFunc(handleSeed)))
	mux.Handle("/debug/storage", admin(http.HandlerFunc(handleDoctor)))

	member := middleware.RequireRole(accountDomain.RoleMember)
	mux.Handle("/portal/profile", member(http.HandlerFunc(handlePortalProfile)))
	mux.Handle("/portal/bills", member(http.HandlerFunc(handlePortalBills)))
	mux.Handle("/portal/bills/pay", member(http.HandlerFunc(handlePortalPayBill)))
	mux.Handle("/portal/diet-plan", member(http.HandlerFunc(handlePortalDietPlan)))
	mux.Handle("/portal/notifications", member(http.HandlerFunc(handlePortalNotifications)))
}

// handleLogin handles POST /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	identity, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		internalError(w, err)
		return
	}

	token, err := sessions.Create(identity.AccountID, identity.Name, identity.Role, identity.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"id":   identity.AccountID,
		"name": identity.Name,
		"role": identity.Role,
	})
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName()); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleSearch handles GET /search?q=<term> — the public member lookup.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	term := r.URL.Query().Get("q")
	if term == "" {
		http.Error(w, "missing q", http.StatusBadRequest)
		return
	}

	results, err := projections.QuerySearchMembers(r.Context(),
		projections.SearchMembersQuery{Term: term},
		projections.SearchMembersDeps{
			MemberStore:  stores.MemberStore,
			PackageStore: stores.PackageStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleAdminStats handles GET /admin/stats
func handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := projections.QueryGetDashboardStats(r.Context(), projections.GetDashboardStatsDeps{
		MemberStore:  stores.MemberStore,
		BillStore:    stores.BillStore,
		PackageStore: stores.PackageStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type memberResponse struct {
	ID string `json:"id"`
	memberDomain.Member
}

func toMemberResponses(members []memberDomain.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{ID: m.ID, Member: m})
	}
	return out
}

// handleAdminMembers handles GET (list) and POST (create) for /admin/members
func handleAdminMembers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		members, err := stores.MemberStore.GetAll(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMemberResponses(members))

	case http.MethodPost:
		var input struct {
			Name      string `json:"name"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			Password  string `json:"password"`
			PackageID string `json:"packageId"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		id, err := orchestrators.ExecuteRegisterMember(r.Context(), orchestrators.RegisterMemberInput{
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Password:  input.Password,
			PackageID: input.PackageID,
		}, orchestrators.RegisterMemberDeps{MemberStore: stores.MemberStore})
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				badRequest(w, err)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminMemberUpdate handles POST /admin/members/update
func handleAdminMemberUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID        string  `json:"id"`
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
		Password  *string `json:"password"`
		PackageID *string `json:"packageId"`
		JoinDate  *string `json:"joinDate"`
		Active    *bool   `json:"active"`
	}
	if err := strictDecode(r, &input); err != nil || input.ID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patch := memberStore.Patch{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  input.Password,
		PackageID: input.PackageID,
		JoinDate:  input.JoinDate,
		Active:    input.Active,
	}
	if err := stores.MemberStore.Update(r.Context(), input.ID, patch); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminMemberDelete handles POST /admin/members/delete
func handleAdminMemberDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, stores.MemberStore.Delete)
}

// handleAdminAssignDiet handles POST /admin/members/assign-diet
func handleAdminAssignDiet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.AssignDietPlanInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteAssignDietPlan(r.Context(), input, orchestrators.AssignDietPlanDeps{
		MemberStore:   stores.MemberStore,
		DietPlanStore: stores.DietPlanStore,
	})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, orchestrators.ErrMemberNotFound), errors.Is(err, orchestrators.ErrDietPlanNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, orchestrators.ErrDietPlanInactive):
		badRequest(w, err)
	default:
		internalError(w, err)
	}
}

type billResponse struct {
	ID string `json:"id"`
	billDomain.Bill
}

func toBillResponses(bills []billDomain.Bill) []billResponse {
	out := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, billResponse{ID: b.ID, Bill: b})
	}
	return out
}

// handleAdminBills handles GET (list, month desc) and POST (create) for /admin/bills.
// GET supports ?memberId=<id> and ?status=Pending filters.
func handleAdminBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var (
			bills []billDomain.Bill
			err   error
		)
		switch {
		case r.URL.Query().Get("memberId") != "":
			bills, err = stores.BillStore.GetByMemberID(r.Context(), r.URL.Query().Get("memberId"))
		case r.URL.Query().Get("status") == billDomain.StatusPending:
			bills, err = stores.BillStore.GetPending(r.Context())
		default:
			bills, err = stores.BillStore.GetAll(r.Context())
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBillResponses(bills))

	case http.MethodPost:
		var b billDomain.Bill
		if err := strictDecode(r, &b); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if b.Status == "" {
			b.Status = billDomain.StatusPending
		}
		id, err := stores.BillStore.Create(r.Context(), b)
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				badRequest(w, err)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminBillUpdate handles POST /admin/bills/update
func handleAdminBillUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID          string   `json:"id"`
		MemberID    *string  `json:"memberId"`
		Amount      *float64 `json:"amount"`
		Month       *string  `json:"month"`
		PaymentDate *string  `json:"paymentDate"`
		Status      *string  `json:"status"`
		ReceiptURL  *string  `json:"receiptUrl"`
	}
	if err := strictDecode(r, &input); err != nil || input.ID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patch := billStore.Patch{
		MemberID:    input.MemberID,
		Amount:      input.Amount,
		Month:       input.Month,
		PaymentDate: input.PaymentDate,
		Status:      input.Status,
		ReceiptURL:  input.ReceiptURL,
	}
	if err := stores.BillStore.Update(r.Context(), input.ID, patch); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminBillDelete handles POST /admin/bills/delete
func handleAdminBillDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, stores.BillStore.Delete)
}

type packageResponse struct {
	ID string `json:"id"`
	packDomain.Package
}

// handleAdminPackages handles GET (list) and POST (create) for /admin/packages
func handleAdminPackages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		packages, err := stores.PackageStore.GetAll(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		out := make([]packageResponse, 0, len(packages))
		for _, p := range packages {
			out = append(out, packageResponse{ID: p.ID, Package: p})
		}
		writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var p packDomain.Package
		if err := strictDecode(r, &p); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		id, err := stores.PackageStore.Create(r.Context(), p)
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				badRequest(w, err)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminPackageUpdate handles POST /admin/packages/update
func handleAdminPackageUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID       string   `json:"id"`
		Name     *string  `json:"name"`
		Price    *float64 `json:"price"`
		Duration *string  `json:"duration"`
	}
	if err := strictDecode(r, &input); err != nil || input.ID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patch := packStore.Patch{Name: input.Name, Price: input.Price, Duration: input.Duration}
	if err := stores.PackageStore.Update(r.Context(), input.ID, patch); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminPackageDelete handles POST /admin/packages/delete
func handleAdminPackageDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, stores.PackageStore.Delete)
}

type dietPlanResponse struct {
	ID string `json:"id"`
	dietplanDomain.DietPlan
}

func toDietPlanResponses(plans []dietplanDomain.DietPlan) []dietPlanResponse {
	out := make([]dietPlanResponse, 0, len(plans))
	for _, d := range plans {
		out = append(out, dietPlanResponse{ID: d.ID, DietPlan: d})
	}
	return out
}

// handleAdminDietPlans handles GET (list) and POST (create) for /admin/diet-plans.
// GET supports ?active=true and ?type=<plan type> filters, both ordered by name.
func handleAdminDietPlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var (
			plans []dietplanDomain.DietPlan
			err   error
		)
		switch {
		case r.URL.Query().Get("type") != "":
			plans, err = stores.DietPlanStore.GetByType(r.Context(), r.URL.Query().Get("type"))
		case r.URL.Query().Get("active") == "true":
			plans, err = stores.DietPlanStore.GetActive(r.Context())
		default:
			plans, err = stores.DietPlanStore.GetAll(r.Context())
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDietPlanResponses(plans))

	case http.MethodPost:
		var d dietplanDomain.DietPlan
		if err := strictDecode(r, &d); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if d.CreatedDate == "" {
			d.CreatedDate = timeNow().Format("2006-01-02")
		}
		id, err := stores.DietPlanStore.Create(r.Context(), d)
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				badRequest(w, err)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminDietPlanUpdate handles POST /admin/diet-plans/update
func handleAdminDietPlanUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID                  string                 `json:"id"`
		Name                *string                `json:"name"`
		Type                *string                `json:"type"`
		Description         *string                `json:"description"`
		CalorieTarget       *float64               `json:"calorieTarget"`
		ProteinTarget       *float64               `json:"proteinTarget"`
		CarbTarget          *float64               `json:"carbTarget"`
		FatTarget           *float64               `json:"fatTarget"`
		DietaryRestrictions *[]string              `json:"dietaryRestrictions"`
		MealPlan            *[]dietplanDomain.Meal `json:"mealPlan"`
		Active              *bool                  `json:"active"`
	}
	if err := strictDecode(r, &input); err != nil || input.ID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patch := dietplanStore.Patch{
		Name:                input.Name,
		Type:                input.Type,
		Description:         input.Description,
		CalorieTarget:       input.CalorieTarget,
		ProteinTarget:       input.ProteinTarget,
		CarbTarget:          input.CarbTarget,
		FatTarget:           input.FatTarget,
		DietaryRestrictions: input.DietaryRestrictions,
		MealPlan:            input.MealPlan,
		Active:              input.Active,
	}
	if err := stores.DietPlanStore.Update(r.Context(), input.ID, patch); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminDietPlanDelete handles POST /admin/diet-plans/delete
func handleAdminDietPlanDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, stores.DietPlanStore.Delete)
}

type notificationResponse struct {
	ID string `json:"id"`
	notificationDomain.Notification
}

func toNotificationResponses(notifications []notificationDomain.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationResponse{ID: n.ID, Notification: n})
	}
	return out
}

// handleAdminNotifications handles GET (list, newest first) and POST
// (send) for /admin/notifications.
func handleAdminNotifications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		notifications, err := stores.NotificationStore.GetAll(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toNotificationResponses(notifications))

	case http.MethodPost:
		var input struct {
			Message string                    `json:"message"`
			Target  notificationDomain.Target `json:"target"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		id, err := orchestrators.ExecuteSendNotification(r.Context(), orchestrators.SendNotificationInput{
			Message: input.Message,
			Target:  input.Target,
		}, orchestrators.SendNotificationDeps{
			NotificationStore: stores.NotificationStore,
			MemberStore:       stores.MemberStore,
			Sender:            emailSender,
		})
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				badRequest(w, err)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminNotificationDelete handles POST /admin/notifications/delete
func handleAdminNotificationDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, stores.NotificationStore.Delete)
}

// handleSeed handles POST /setup/seed
func handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteSeed(r.Context(), orchestrators.SeedStores{
		Packages:      stores.PackageStore,
		Members:       stores.MemberStore,
		Bills:         stores.BillStore,
		Notifications: stores.NotificationStore,
		Accounts:      stores.AccountStore,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
	case errors.Is(err, orchestrators.ErrAlreadySeeded):
		writeJSON(w, http.StatusOK, map[string]string{"status": "already seeded"})
	default:
		internalError(w, err)
	}
}

// handleDoctor handles GET /debug/storage
func handleDoctor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	report := orchestrators.ExecuteDoctor(r.Context(), orchestrators.DoctorDeps{DB: stores.DB})
	writeJSON(w, http.StatusOK, report)
}

// handlePortalProfile handles GET /portal/profile
func handlePortalProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	m, found, err := stores.MemberStore.GetByID(r.Context(), session.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	if !found {
		http.Error(w, "member record not found", http.StatusNotFound)
		return
	}
	m.Password = ""
	writeJSON(w, http.StatusOK, memberResponse{ID: m.ID, Member: m})
}

// handlePortalBills handles GET /portal/bills — the member's own bills, month desc.
func handlePortalBills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	bills, err := stores.BillStore.GetByMemberID(r.Context(), session.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillResponses(bills))
}

// handlePortalPayBill handles POST /portal/bills/pay
func handlePortalPayBill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		BillID string `json:"billId"`
	}
	if err := strictDecode(r, &input); err != nil || input.BillID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	err := orchestrators.ExecutePayBill(r.Context(), orchestrators.PayBillInput{
		BillID:   input.BillID,
		MemberID: session.MemberID,
	}, orchestrators.PayBillDeps{BillStore: stores.BillStore})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"status":     billDomain.StatusPaid,
			"receiptUrl": "/receipts/" + input.BillID + ".pdf",
		})
	case errors.Is(err, orchestrators.ErrBillNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, billDomain.ErrAlreadyPaid):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		internalError(w, err)
	}
}

// handlePortalDietPlan handles GET /portal/diet-plan
func handlePortalDietPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	m, found, err := stores.MemberStore.GetByID(r.Context(), session.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	if !found || m.DietPlanID == "" {
		http.Error(w, "no diet plan assigned", http.StatusNotFound)
		return
	}

	plan, found, err := stores.DietPlanStore.GetByID(r.Context(), m.DietPlanID)
	if err != nil {
		internalError(w, err)
		return
	}
	if !found {
		http.Error(w, "no diet plan assigned", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"plan":      dietPlanResponse{ID: plan.ID, DietPlan: plan},
		"dietNotes": m.DietNotes,
	})
}

// handlePortalNotifications handles GET /portal/notifications — only
// notifications targeting this member (or everyone).
func handlePortalNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	all, err := stores.NotificationStore.GetAll(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	var mine []notificationDomain.Notification
	for _, n := range all {
		if n.Target.Includes(session.MemberID) {
			mine = append(mine, n)
		}
	}
	writeJSON(w, http.StatusOK, toNotificationResponses(mine))
}

// deleteByID is the shared shape of the delete endpoints: POST {"id": ...}.
func deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id string) error) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID string `json:"id"`
	}
	if err := strictDecode(r, &input); err != nil || input.ID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := del(r.Context(), input.ID); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondStoreError maps store and validation failures to HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		badRequest(w, err)
		return
	}
	if storagepkg.IsNotFound(err) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	internalError(w, err)
}
